package watch

import (
	"testing"
	"time"
)

func newTestSweeper(roster *Roster, notifier *Notifier, timeout time.Duration) (*Sweeper, *time.Duration) {
	current := timeout
	sweeper := NewSweeper(roster, notifier,
		func() time.Duration { return current },
		func() string { return "test-session" },
	)
	return sweeper, &current
}

func TestSweeperEvictsStaleOnly(t *testing.T) {
	roster := NewRoster()
	notifier := NewNotifier(8)
	defer notifier.Close()
	sweeper, _ := newTestSweeper(roster, notifier, 30*time.Second)

	now := time.Now().UTC()
	roster.Upsert(testDevice(0x01, "stale", now.Add(-time.Minute)))
	roster.Upsert(testDevice(0x02, "fresh", now.Add(-time.Second)))

	evicted := sweeper.Sweep(now)

	if len(evicted) != 1 || evicted[0].Name != "stale" {
		t.Fatalf("Sweep evicted %v, want only the stale device", evicted)
	}
	if roster.Len() != 1 {
		t.Errorf("roster has %d entries after sweep, want 1", roster.Len())
	}
}

func TestSweeperPublishesTimeoutEvents(t *testing.T) {
	roster := NewRoster()
	notifier := NewNotifier(8)
	defer notifier.Close()
	sweeper, _ := newTestSweeper(roster, notifier, 10*time.Second)

	events := make(chan Event, 8)
	notifier.Subscribe(func(event Event) { events <- event })

	now := time.Now().UTC()
	roster.Upsert(testDevice(0x05, "gone", now.Add(-time.Minute)))

	sweeper.Sweep(now)

	select {
	case event := <-events:
		if event.Type != EventDeviceTimeout {
			t.Errorf("event type = %v, want DEVICE_TIMEOUT", event.Type)
		}
		if event.Device == nil || event.Device.Name != "gone" {
			t.Errorf("event device = %v, want the evicted device", event.Device)
		}
		if event.SessionID != "test-session" {
			t.Errorf("event session = %q, want %q", event.SessionID, "test-session")
		}
	case <-time.After(time.Second):
		t.Fatal("no DeviceTimeout event published")
	}
}

// TestSweeperTimeoutChangeEffectiveNextSweep verifies the heartbeat value
// is re-read per sweep rather than captured at construction.
func TestSweeperTimeoutChangeEffectiveNextSweep(t *testing.T) {
	roster := NewRoster()
	notifier := NewNotifier(8)
	defer notifier.Close()
	sweeper, timeout := newTestSweeper(roster, notifier, time.Hour)

	now := time.Now().UTC()
	roster.Upsert(testDevice(0x09, "dev", now.Add(-time.Minute)))

	if evicted := sweeper.Sweep(now); len(evicted) != 0 {
		t.Fatalf("Sweep with 1h timeout evicted %d devices, want 0", len(evicted))
	}

	*timeout = 10 * time.Second
	if evicted := sweeper.Sweep(now); len(evicted) != 1 {
		t.Fatalf("Sweep after timeout change evicted %d devices, want 1", len(evicted))
	}
}

func TestSweeperEmptyRoster(t *testing.T) {
	roster := NewRoster()
	notifier := NewNotifier(8)
	defer notifier.Close()
	sweeper, _ := newTestSweeper(roster, notifier, time.Second)

	if evicted := sweeper.Sweep(time.Now().UTC()); len(evicted) != 0 {
		t.Errorf("Sweep of empty roster evicted %d devices", len(evicted))
	}
}
