// Package dlp implements the Desktop Link Protocol: the RPC layer on top
// of PADP/NetSync, its tagged variable-width argument codec, and the
// catalog of request/response command pairs.
package dlp

import (
	"encoding/binary"
	"fmt"
	"time"
)

// sizeClass is the top two bits of an argument's id byte.
type sizeClass uint8

const (
	classSmall sizeClass = 0 // top bits 00, ≤255 bytes, 2-byte header
	classLong  sizeClass = 1 // top bits 01, ≤2^32-1 bytes, 6-byte header
	classShort sizeClass = 2 // top bits 10, ≤65535 bytes, 4-byte header
)

const firstArgID = 0x20

// Arg is one wire argument: an id in [firstArgID, 0x3F] (the low six bits
// of the wire id byte) and its raw body. The size class used on the wire is derived from len(Data) at
// encode time, always the smallest class that fits.
type Arg struct {
	ID   byte
	Data []byte
}

func classFor(n int) sizeClass {
	switch {
	case n <= 0xFF:
		return classSmall
	case n <= 0xFFFF:
		return classShort
	default:
		return classLong
	}
}

// EncodeArgs serializes args in order, each with the smallest size class
// that fits its body.
func EncodeArgs(args []Arg) []byte {
	var out []byte
	for _, a := range args {
		c := classFor(len(a.Data))
		idByte := a.ID&0x3F | byte(c)<<6
		switch c {
		case classSmall:
			out = append(out, idByte, byte(len(a.Data)))
		case classShort:
			out = append(out, idByte, 0)
			lenBuf := make([]byte, 2)
			binary.BigEndian.PutUint16(lenBuf, uint16(len(a.Data)))
			out = append(out, lenBuf...)
		case classLong:
			lenBuf := make([]byte, 4)
			binary.BigEndian.PutUint32(lenBuf, uint32(len(a.Data)))
			out = append(out, idByte, 0)
			out = append(out, lenBuf...)
		}
		out = append(out, a.Data...)
	}
	return out
}

// DecodeArgs parses argc arguments from raw, returning each as a raw Arg
// for the caller (the catalog's per-command decoder) to distribute into
// declared fields.
func DecodeArgs(raw []byte, argc int) ([]Arg, error) {
	args := make([]Arg, 0, argc)
	for i := 0; i < argc; i++ {
		if len(raw) < 2 {
			return nil, fmt.Errorf("%w: argument %d header truncated", ErrArgShapeMismatch, i)
		}
		idByte := raw[0]
		c := sizeClass(idByte >> 6)
		id := idByte & 0x3F

		var dataLen int
		var headerLen int
		switch c {
		case classSmall:
			dataLen = int(raw[1])
			headerLen = 2
		case classShort:
			if len(raw) < 4 {
				return nil, fmt.Errorf("%w: short-form argument %d header truncated", ErrArgShapeMismatch, i)
			}
			dataLen = int(binary.BigEndian.Uint16(raw[2:4]))
			headerLen = 4
		case classLong:
			if len(raw) < 6 {
				return nil, fmt.Errorf("%w: long-form argument %d header truncated", ErrArgShapeMismatch, i)
			}
			dataLen = int(binary.BigEndian.Uint32(raw[2:6]))
			headerLen = 6
		default:
			return nil, fmt.Errorf("%w: unknown size class", ErrArgShapeMismatch)
		}

		if len(raw) < headerLen+dataLen {
			return nil, fmt.Errorf("%w: argument %d body truncated", ErrArgShapeMismatch, i)
		}
		args = append(args, Arg{ID: id, Data: raw[headerLen : headerLen+dataLen]})
		raw = raw[headerLen+dataLen:]
	}
	return args, nil
}

// Request is a DLP request frame: {func_id, argc, arg_1, arg_2, ...}.
type Request struct {
	FuncID byte
	Args   []Arg
}

func (r *Request) Encode() []byte {
	out := []byte{r.FuncID, byte(len(r.Args))}
	return append(out, EncodeArgs(r.Args)...)
}

// Response is a DLP response frame: {func_id|0x80, argc, err_code, arg_1, ...}.
type Response struct {
	FuncID  byte
	ErrCode ErrCode
	Args    []Arg
}

// DecodeResponse parses raw as a response to a request with wantFuncID,
// applying the rejection rules of spec.md §4.5.
func DecodeResponse(raw []byte, wantFuncID byte) (*Response, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("%w: response too short", ErrProtocolMismatch)
	}
	funcID := raw[0]
	if funcID != wantFuncID|0x80 {
		return nil, fmt.Errorf("%w: got func id 0x%02x, want 0x%02x", ErrProtocolMismatch, funcID, wantFuncID|0x80)
	}
	argc := int(raw[1])
	errCode := ErrCode(binary.BigEndian.Uint16(raw[2:4]))
	if errCode != ErrNone && argc != 0 {
		return nil, fmt.Errorf("%w: non-zero err_code 0x%04x with argc=%d", ErrArgShapeMismatch, errCode, argc)
	}

	args, err := DecodeArgs(raw[4:], argc)
	if err != nil {
		return nil, err
	}
	return &Response{FuncID: funcID &^ 0x80, ErrCode: errCode, Args: args}, nil
}

func (r *Response) Encode() []byte {
	out := make([]byte, 4)
	out[0] = r.FuncID | 0x80
	out[1] = byte(len(r.Args))
	binary.BigEndian.PutUint16(out[2:4], uint16(r.ErrCode))
	return append(out, EncodeArgs(r.Args)...)
}

// Transport is the subset of pkg/transport.Transport the DLP layer needs:
// one reliable Send and one blocking Receive per call.
type Transport interface {
	Send(msg []byte) (xid byte, err error)
	Receive() (msg []byte, xid byte, err error)
}

// Client issues DLP requests over t and decodes their responses.
type Client struct {
	t Transport
}

func NewClient(t Transport) *Client { return &Client{t: t} }

// Execute serializes req, sends it, reads the matching response, and
// raises ErrCode as a Go error unless it's in ignoreCodes.
func (c *Client) Execute(req *Request, ignoreCodes map[ErrCode]bool) (*Response, error) {
	if _, err := c.t.Send(req.Encode()); err != nil {
		return nil, err
	}
	raw, _, err := c.t.Receive()
	if err != nil {
		return nil, err
	}
	resp, err := DecodeResponse(raw, req.FuncID)
	if err != nil {
		return nil, err
	}
	if resp.ErrCode != ErrNone && !ignoreCodes[resp.ErrCode] {
		return resp, resp.ErrCode
	}
	return resp, nil
}

// palmEpoch is 1904-01-01 UTC, the fixed epoch a zero-year date/time field
// maps to (spec.md §4.5).
var palmEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// EncodeDateTime serializes t to the DLP date/time wire form. A zero
// time.Time encodes as year=0 ("no value").
func EncodeDateTime(t time.Time) []byte {
	buf := make([]byte, 8)
	if t.IsZero() {
		return buf
	}
	binary.BigEndian.PutUint16(buf[0:2], uint16(t.Year()))
	buf[2] = byte(t.Month())
	buf[3] = byte(t.Day())
	buf[4] = byte(t.Hour())
	buf[5] = byte(t.Minute())
	buf[6] = byte(t.Second())
	return buf
}

// DecodeDateTime parses the DLP date/time wire form. year=0 maps to the
// fixed Palm epoch.
func DecodeDateTime(raw []byte) (time.Time, error) {
	if len(raw) < 8 {
		return time.Time{}, fmt.Errorf("dlp: date/time field too short: %d bytes", len(raw))
	}
	year := binary.BigEndian.Uint16(raw[0:2])
	if year == 0 {
		return palmEpoch, nil
	}
	return time.Date(int(year), time.Month(raw[2]), int(raw[3]), int(raw[4]), int(raw[5]), int(raw[6]), 0, time.UTC), nil
}
