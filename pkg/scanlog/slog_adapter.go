package scanlog

import (
	"context"
	"log/slog"

	"github.com/blewatch/blewatch-go/pkg/ble"
)

// SlogAdapter writes scan events to an slog.Logger.
// Useful for development when you want to see scan events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("kind", event.Kind.String()),
	}

	if event.Address != 0 {
		attrs = append(attrs, slog.String("address", ble.FormatAddress(event.Address)))
	}
	if event.Name != "" {
		attrs = append(attrs, slog.String("name", event.Name))
	}
	if event.RSSI != 0 {
		attrs = append(attrs, slog.Int("rssi", int(event.RSSI)))
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "scan event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
