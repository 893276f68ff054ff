package watch

import "time"

// Sweeper evicts roster entries whose last-seen timestamp has aged past the
// heartbeat timeout, publishing a DeviceTimeout event per eviction. It runs
// lazily before every roster read and advertisement, and periodically from
// the watcher's sweep loop so stale devices disappear even absent traffic.
type Sweeper struct {
	roster   *Roster
	notifier *Notifier

	// timeout yields the current heartbeat timeout; the value is re-read
	// on every sweep so runtime changes take effect on the next sweep.
	timeout func() time.Duration

	// session yields the session ID stamped onto timeout events.
	session func() string
}

// NewSweeper creates a sweeper over roster, publishing evictions to
// notifier. timeout and session are consulted per sweep.
func NewSweeper(roster *Roster, notifier *Notifier, timeout func() time.Duration, session func() string) *Sweeper {
	return &Sweeper{
		roster:   roster,
		notifier: notifier,
		timeout:  timeout,
		session:  session,
	}
}

// Sweep evicts all entries last seen before now minus the heartbeat
// timeout and returns them in eviction (ID) order.
func (s *Sweeper) Sweep(now time.Time) []Device {
	evicted := s.roster.EvictOlderThan(now.Add(-s.timeout()))

	for i := range evicted {
		device := evicted[i]
		s.notifier.Publish(Event{
			Type:      EventDeviceTimeout,
			Device:    &device,
			SessionID: s.session(),
			Timestamp: now,
		})
	}
	return evicted
}
