package transport

import (
	"fmt"
	"time"

	serial "github.com/daedaluz/goserial"
	"golang.org/x/sys/unix"
)

// SerialPort wraps a github.com/daedaluz/goserial port as an
// io.ReadWriteCloser plus the cmp.BaudSwitcher interface, so the same
// handle opened at the device's default 9600 baud can be handed to
// NewSerial and then have its physical rate changed in place once CMP
// negotiation completes.
type SerialPort struct {
	port *serial.Port
}

// OpenSerial opens name (e.g. "/dev/ttyUSB0") at 9600 baud 8N1, the
// mandatory starting point for every serial HotSync session (spec.md §6).
func OpenSerial(name string) (*SerialPort, error) {
	opts := serial.NewOptions().SetReadTimeout(5 * time.Second)
	port, err := serial.Open(name, opts)
	if err != nil {
		return nil, err
	}
	sp := &SerialPort{port: port}
	if err := sp.SetBaud(9600); err != nil {
		port.Close()
		return nil, err
	}
	return sp, nil
}

func (s *SerialPort) Read(p []byte) (int, error)  { return s.port.Read(p) }
func (s *SerialPort) Write(p []byte) (int, error) { return s.port.Write(p) }
func (s *SerialPort) Close() error                { return s.port.Close() }

// SetBaud implements cmp.BaudSwitcher, switching the live line rate via
// termios2's arbitrary-speed ioctl rather than the fixed Bxxxx constants,
// since a negotiated HotSync baud rate need not be one of the standard
// POSIX speeds.
func (s *SerialPort) SetBaud(rate uint32) error {
	attrs, err := s.port.GetAttr2()
	if err != nil {
		return err
	}
	attrs.MakeRaw()
	attrs.SetCustomSpeed(rate)
	if err := s.port.SetAttr2(serial.TCSANOW, attrs); err != nil {
		return err
	}
	return s.verifyRawMode()
}

// verifyRawMode reads the line discipline back through a direct
// TCGETS ioctl, independent of goserial's own termios2 wrapper, and
// fails if the driver silently left canonical mode, echo, or signal
// generation enabled after SetAttr2 reported success.
func (s *SerialPort) verifyRawMode() error {
	t, err := unix.IoctlGetTermios(s.port.Fd(), unix.TCGETS)
	if err != nil {
		return err
	}
	if t.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG) != 0 {
		return fmt.Errorf("transport: serial port fd %d did not enter raw mode", s.port.Fd())
	}
	return nil
}
