// Package commands implements the blewatch-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/blewatch/blewatch-go/pkg/ble"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
)

// formatEvent writes a human-readable one-line representation of the
// event to w.
func formatEvent(w io.Writer, event scanlog.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [session:%s] %-17s", ts, session, event.Kind.String())

	if event.Address != 0 {
		fmt.Fprintf(w, " %s", ble.FormatAddress(event.Address))
	}
	if event.Name != "" {
		fmt.Fprintf(w, " %q", event.Name)
	}
	if event.RSSI != 0 {
		fmt.Fprintf(w, " rssi=%d", event.RSSI)
	}
	if event.Detail != "" {
		fmt.Fprintf(w, " (%s)", event.Detail)
	}
	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseKindFlag parses an event kind string from a command-line flag
// (case-insensitive).
func ParseKindFlag(s string) (scanlog.Kind, error) {
	switch strings.ToLower(s) {
	case "started":
		return scanlog.KindStartedListening, nil
	case "stopped":
		return scanlog.KindStoppedListening, nil
	case "discovered":
		return scanlog.KindDiscovered, nil
	case "new":
		return scanlog.KindNewDevice, nil
	case "renamed":
		return scanlog.KindNameChanged, nil
	case "timeout":
		return scanlog.KindTimeout, nil
	default:
		return 0, fmt.Errorf("invalid kind: %s (must be started, stopped, discovered, new, renamed, or timeout)", s)
	}
}

// ParseAddressFlag parses a device address string from a command-line flag.
func ParseAddressFlag(s string) (uint64, error) {
	return ble.ParseAddress(s)
}

// RunView executes the view command.
func RunView(path string, filter scanlog.Filter, output io.Writer) error {
	reader, err := scanlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
