package ble

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAddress renders a 48-bit hardware address in the canonical
// colon-separated form "AA:BB:CC:DD:EE:FF" (upper case, most significant
// octet first).
func FormatAddress(address uint64) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		byte(address>>40), byte(address>>32), byte(address>>24),
		byte(address>>16), byte(address>>8), byte(address))
}

// ParseAddress parses a colon- or dash-separated hardware address string
// into its numeric form. Case-insensitive. Returns ErrInvalidAddress for
// anything that is not six two-digit hex octets.
func ParseAddress(s string) (uint64, error) {
	normalized := strings.ReplaceAll(s, "-", ":")
	parts := strings.Split(normalized, ":")
	if len(parts) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	var address uint64
	for _, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		octet, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		address = address<<8 | octet
	}
	return address, nil
}
