package scanlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blewatch/blewatch-go/pkg/watch"
)

// captureLogger records events in memory for assertions.
type captureLogger struct {
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.events = append(c.events, event)
}

func TestSubscriberMapsEventTypes(t *testing.T) {
	tests := []struct {
		eventType watch.EventType
		kind      Kind
	}{
		{watch.EventStartedListening, KindStartedListening},
		{watch.EventStoppedListening, KindStoppedListening},
		{watch.EventDeviceDiscovered, KindDiscovered},
		{watch.EventNewDeviceDiscovered, KindNewDevice},
		{watch.EventDeviceNameChanged, KindNameChanged},
		{watch.EventDeviceTimeout, KindTimeout},
	}

	capture := &captureLogger{}
	handler := Subscriber(capture)

	for _, tc := range tests {
		handler(watch.Event{Type: tc.eventType, SessionID: "s", Timestamp: time.Now().UTC()})
	}

	require.Len(t, capture.events, len(tests))
	for i, tc := range tests {
		assert.Equal(t, tc.kind, capture.events[i].Kind, "event type %s", tc.eventType)
	}
}

func TestSubscriberCarriesDeviceFields(t *testing.T) {
	capture := &captureLogger{}
	handler := Subscriber(capture)

	device := watch.Device{
		ID:      "AA:BB:CC:DD:EE:FF",
		Address: 0xAABBCCDDEEFF,
		Name:    "Sensor-A",
		RSSI:    -48,
	}
	handler(watch.Event{
		Type:      watch.EventDeviceDiscovered,
		Device:    &device,
		SessionID: "s",
		Timestamp: time.Now().UTC(),
	})

	require.Len(t, capture.events, 1)
	record := capture.events[0]
	assert.Equal(t, uint64(0xAABBCCDDEEFF), record.Address)
	assert.Equal(t, "Sensor-A", record.Name)
	assert.Equal(t, int16(-48), record.RSSI)
}

func TestMultiLoggerFansOut(t *testing.T) {
	first := &captureLogger{}
	second := &captureLogger{}
	multi := NewMultiLogger(first, second)

	multi.Log(Event{SessionID: "s", Kind: KindDiscovered})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestSlogAdapterOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		SessionID: "session-1",
		Kind:      KindNewDevice,
		Address:   0xAABBCCDDEEFF,
		Name:      "Sensor-A",
		RSSI:      -48,
	})

	out := buf.String()
	assert.True(t, strings.Contains(out, "session-1"), "output: %s", out)
	assert.True(t, strings.Contains(out, "NEW_DEVICE"), "output: %s", out)
	assert.True(t, strings.Contains(out, "AA:BB:CC:DD:EE:FF"), "output: %s", out)
	assert.True(t, strings.Contains(out, "Sensor-A"), "output: %s", out)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "STARTED_LISTENING", KindStartedListening.String())
	assert.Equal(t, "TIMEOUT", KindTimeout.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestNoopLogger(t *testing.T) {
	// Usable as a zero value, discards everything.
	var logger NoopLogger
	logger.Log(Event{Kind: KindDiscovered})
}
