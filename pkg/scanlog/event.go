package scanlog

import "time"

// Kind classifies a scan log event.
type Kind uint8

const (
	// KindStartedListening - a scan session began.
	KindStartedListening Kind = 0

	// KindStoppedListening - a scan session ended.
	KindStoppedListening Kind = 1

	// KindDiscovered - an advertisement was resolved into the roster.
	KindDiscovered Kind = 2

	// KindNewDevice - the resolution introduced a previously unseen device.
	KindNewDevice Kind = 3

	// KindNameChanged - a device's name changed between sightings.
	KindNameChanged Kind = 4

	// KindTimeout - a device aged out of the roster.
	KindTimeout Kind = 5
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStartedListening:
		return "STARTED_LISTENING"
	case KindStoppedListening:
		return "STOPPED_LISTENING"
	case KindDiscovered:
		return "DISCOVERED"
	case KindNewDevice:
		return "NEW_DEVICE"
	case KindNameChanged:
		return "NAME_CHANGED"
	case KindTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Event is one scan log record. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the scan session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"3,keyasint"`

	// Address is the device hardware address, zero for session events.
	Address uint64 `cbor:"4,keyasint,omitempty"`

	// Name is the device name at observation time, if any.
	Name string `cbor:"5,keyasint,omitempty"`

	// RSSI is the signal strength of the triggering advertisement.
	RSSI int16 `cbor:"6,keyasint,omitempty"`

	// Detail carries optional free-form context.
	Detail string `cbor:"7,keyasint,omitempty"`
}
