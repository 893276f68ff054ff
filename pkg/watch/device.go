package watch

import (
	"time"

	"github.com/blewatch/blewatch-go/pkg/ble"
)

// Device is an immutable point-in-time snapshot of a visible peripheral.
// The roster always holds exactly the latest snapshot per ID.
type Device struct {
	// ID is the stable identifier derived from the hardware address.
	ID string

	// Address is the numeric hardware address.
	Address uint64

	// Name is the human-readable device name. May be empty.
	Name string

	// LastSeen is the timestamp of the advertisement that produced this
	// snapshot (UTC).
	LastSeen time.Time

	// RSSI is the signal strength of that advertisement in dBm.
	RSSI int16

	// Connected, Pairable and Paired reflect resolver output at
	// observation time.
	Connected bool
	Pairable  bool
	Paired    bool
}

// DeviceID derives the stable roster key for a hardware address.
func DeviceID(address uint64) string {
	return ble.FormatAddress(address)
}

// DisplayName returns the device name, or the ID for unnamed devices.
func (d Device) DisplayName() string {
	if d.Name == "" {
		return d.ID
	}
	return d.Name
}

// Change classifies the effect of a roster upsert. NameChanged is reported
// alongside Updated; New and Unchanged stand alone.
type Change uint8

const (
	// ChangeUnchanged - the replacement snapshot was identical to the
	// prior entry.
	ChangeUnchanged Change = 0

	// ChangeNew - no prior entry existed for the ID.
	ChangeNew Change = 1 << 0

	// ChangeUpdated - a prior entry was replaced.
	ChangeUpdated Change = 1 << 1

	// ChangeNameChanged - the prior and new names are both non-empty and
	// differ. Always accompanied by ChangeUpdated.
	ChangeNameChanged Change = 1 << 2
)

// Has reports whether the classification includes flag.
func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

// String returns a human-readable classification name.
func (c Change) String() string {
	switch {
	case c == ChangeUnchanged:
		return "UNCHANGED"
	case c.Has(ChangeNew):
		return "NEW"
	case c.Has(ChangeNameChanged):
		return "UPDATED+NAME_CHANGED"
	case c.Has(ChangeUpdated):
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}
