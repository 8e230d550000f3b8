// Package config loads the two pieces of persisted state the session
// orchestrator needs at connection setup (spec.md §6, §9 "device/session
// config"): a static USB vendor/product init-profile table, and a small
// per-user JSON file. The ini-backed table loader mirrors the teacher's
// pkg/od.Parse/parser_v1.go, repurposed from EDS object-dictionary
// sections to device-id sections.
package config

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/ini.v1"
)

// InitProfile is the handshake quirk profile a USB device needs before
// data transfer (spec.md §6).
type InitProfile string

const (
	InitNone          InitProfile = "NONE"
	InitGeneric       InitProfile = "GENERIC"
	InitEarlySonyCLIE InitProfile = "EARLY_SONY_CLIE"
)

// ProtocolStack is which framing stack a device's bulk endpoints speak.
type ProtocolStack string

const (
	StackSerial  ProtocolStack = "SERIAL"
	StackNetSync ProtocolStack = "NETSYNC"
)

// DeviceProfile is one row of the USB device table.
type DeviceProfile struct {
	VendorID    uint16
	ProductID   uint16
	Name        string
	InitProfile InitProfile
	Protocol    ProtocolStack
}

type deviceKey struct {
	vendor  uint16
	product uint16
}

// DeviceTable is the full loaded table, keyed by (vendor, product).
type DeviceTable map[deviceKey]DeviceProfile

// Lookup finds the profile for a (vendor, product) pair.
func (t DeviceTable) Lookup(vendorID, productID uint16) (DeviceProfile, bool) {
	p, ok := t[deviceKey{vendorID, productID}]
	return p, ok
}

var sectionRegexp = regexp.MustCompile(`^([0-9A-Fa-f]{4}):([0-9A-Fa-f]{4})$`)

// LoadDeviceTable parses a "VVVV:PPPP" section per device from file (a
// path, []byte, or io.Reader — anything ini.Load accepts).
//
//	[0830:0061]
//	Name = Handspring Visor
//	InitProfile = GENERIC
//	Protocol = NETSYNC
func LoadDeviceTable(file any) (DeviceTable, error) {
	cfg, err := ini.Load(file)
	if err != nil {
		return nil, fmt.Errorf("config: loading device table: %w", err)
	}

	table := make(DeviceTable)
	for _, section := range cfg.Sections() {
		m := sectionRegexp.FindStringSubmatch(section.Name())
		if m == nil {
			continue
		}
		vendor, err := strconv.ParseUint(m[1], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("config: section %q: %w", section.Name(), err)
		}
		product, err := strconv.ParseUint(m[2], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("config: section %q: %w", section.Name(), err)
		}

		profile := DeviceProfile{
			VendorID:    uint16(vendor),
			ProductID:   uint16(product),
			Name:        section.Key("Name").String(),
			InitProfile: InitProfile(section.Key("InitProfile").MustString(string(InitNone))),
			Protocol:    ProtocolStack(section.Key("Protocol").MustString(string(StackNetSync))),
		}
		table[deviceKey{profile.VendorID, profile.ProductID}] = profile
	}
	return table, nil
}
