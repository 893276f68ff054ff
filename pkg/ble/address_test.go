package ble

import (
	"errors"
	"testing"
)

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name    string
		address uint64
		want    string
	}{
		{"zero", 0, "00:00:00:00:00:00"},
		{"typical", 0xAABBCCDDEEFF, "AA:BB:CC:DD:EE:FF"},
		{"leading zeros", 0x0000A1B2C3, "00:00:00:A1:B2:C3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAddress(tt.address); got != tt.want {
				t.Errorf("FormatAddress(%#x) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint64
	}{
		{"upper case", "AA:BB:CC:DD:EE:FF", 0xAABBCCDDEEFF},
		{"lower case", "aa:bb:cc:dd:ee:ff", 0xAABBCCDDEEFF},
		{"dashes", "AA-BB-CC-DD-EE-FF", 0xAABBCCDDEEFF},
		{"zeros", "00:00:00:00:00:01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if err != nil {
				t.Fatalf("ParseAddress(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %#x, want %#x", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAddressInvalid(t *testing.T) {
	inputs := []string{
		"",
		"AA:BB:CC:DD:EE",
		"AA:BB:CC:DD:EE:FF:00",
		"GG:BB:CC:DD:EE:FF",
		"AAA:BB:CC:DD:EE:F",
		"not an address",
	}

	for _, input := range inputs {
		if _, err := ParseAddress(input); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("ParseAddress(%q) error = %v, want ErrInvalidAddress", input, err)
		}
	}
}

func TestParseAddressRoundTrip(t *testing.T) {
	const address = uint64(0x001122334455)
	got, err := ParseAddress(FormatAddress(address))
	if err != nil {
		t.Fatalf("round trip error = %v", err)
	}
	if got != address {
		t.Errorf("round trip = %#x, want %#x", got, address)
	}
}
