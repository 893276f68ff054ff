package watch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/blewatch/blewatch-go/pkg/ble"
)

// Watcher bridges a ble.Source to the roster. It is either Stopped or
// Listening; Start and Stop are idempotent. See the package documentation
// for the reconciliation and ordering semantics.
type Watcher struct {
	source   ble.Source
	resolver ble.Resolver

	roster   *Roster
	notifier *Notifier
	sweeper  *Sweeper

	// heartbeat holds the current heartbeat timeout in nanoseconds.
	heartbeat atomic.Int64

	resolveTimeout time.Duration
	sweepInterval  time.Duration

	mu        sync.Mutex
	listening bool
	sessionID string
	cancel    context.CancelFunc

	// inflight tracks advertisement processing from acceptance to commit
	// or discard. WaitIdle blocks on it.
	inflight sync.WaitGroup

	// sweepWg tracks the background sweep loop.
	sweepWg sync.WaitGroup
}

// NewWatcher creates a stopped watcher. The source and resolver are
// required; zero config fields take their defaults.
func NewWatcher(source ble.Source, resolver ble.Resolver, config Config) (*Watcher, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if resolver == nil {
		return nil, ErrNilResolver
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	w := &Watcher{
		source:         source,
		resolver:       resolver,
		roster:         NewRoster(),
		notifier:       NewNotifier(config.EventBuffer),
		resolveTimeout: config.ResolveTimeout,
		sweepInterval:  config.SweepInterval,
	}
	w.heartbeat.Store(int64(config.HeartbeatTimeout))
	w.sweeper = NewSweeper(w.roster, w.notifier, w.HeartbeatTimeout, w.SessionID)

	return w, nil
}

// Start transitions Stopped -> Listening, begins receiving advertisements
// and emits StartedListening. A no-op when already listening.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.listening {
		w.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.source.Start(ctx, w.HandleAdvertisement); err != nil {
		cancel()
		w.mu.Unlock()
		return err
	}

	w.listening = true
	w.sessionID = uuid.NewString()
	w.cancel = cancel
	session := w.sessionID

	w.sweepWg.Add(1)
	go w.sweepLoop(ctx)
	w.mu.Unlock()

	w.notifier.Publish(Event{
		Type:      EventStartedListening,
		SessionID: session,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// Stop transitions Listening -> Stopped, stops receiving advertisements,
// clears the roster and emits StoppedListening. In-flight resolutions are
// not cancelled; their commits observe the stopped state and become
// no-ops. A no-op when already stopped.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.listening {
		w.mu.Unlock()
		return nil
	}

	w.listening = false
	w.cancel()
	w.cancel = nil
	w.roster.Clear()
	session := w.sessionID
	w.mu.Unlock()

	err := w.source.Stop()
	w.sweepWg.Wait()

	w.notifier.Publish(Event{
		Type:      EventStoppedListening,
		SessionID: session,
		Timestamp: time.Now().UTC(),
	})
	return err
}

// Close stops the watcher and releases all subscribers.
func (w *Watcher) Close() error {
	err := w.Stop()
	w.inflight.Wait()
	w.notifier.Close()
	return err
}

// Listening reports whether the watcher is receiving advertisements.
func (w *Watcher) Listening() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.listening
}

// SessionID returns the ID of the current listening session, or the empty
// string before the first Start.
func (w *Watcher) SessionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionID
}

// HeartbeatTimeout returns the current heartbeat timeout.
func (w *Watcher) HeartbeatTimeout() time.Duration {
	return time.Duration(w.heartbeat.Load())
}

// SetHeartbeatTimeout changes the heartbeat timeout at runtime. The new
// value takes effect on the next sweep, not retroactively.
func (w *Watcher) SetHeartbeatTimeout(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidConfig
	}
	w.heartbeat.Store(int64(d))
	return nil
}

// Devices returns an eviction-checked, independent snapshot of the roster,
// ordered by device ID.
func (w *Watcher) Devices() []Device {
	w.sweeper.Sweep(time.Now().UTC())
	return w.roster.Snapshot()
}

// Subscribe registers an event handler and returns a handle for
// Unsubscribe.
func (w *Watcher) Subscribe(fn EventFunc) string {
	return w.notifier.Subscribe(fn)
}

// Unsubscribe removes a previously registered event handler.
func (w *Watcher) Unsubscribe(id string) {
	w.notifier.Unsubscribe(id)
}

// HandleAdvertisement accepts a raw advertisement event. Each accepted
// event is processed as an independent concurrent unit of work; failures
// never propagate to the caller. Events arriving while stopped are
// ignored.
func (w *Watcher) HandleAdvertisement(adv ble.Advertisement) {
	w.mu.Lock()
	listening := w.listening
	w.mu.Unlock()
	if !listening {
		return
	}

	w.inflight.Add(1)
	go w.process(adv)
}

// WaitIdle blocks until all currently accepted advertisements have been
// committed or discarded. Primarily for tests that need deterministic
// completion of a batch of in-flight resolutions.
func (w *Watcher) WaitIdle() {
	w.inflight.Wait()
}

// process runs the reconciliation pipeline for one advertisement: sweep,
// resolve, commit, notify.
func (w *Watcher) process(adv ble.Advertisement) {
	defer w.inflight.Done()

	w.sweeper.Sweep(time.Now().UTC())

	// The resolver call is the single suspension point. It deliberately
	// does not inherit the session context: stopping must not cancel
	// in-flight resolutions, only void their commits.
	ctx, cancel := context.WithTimeout(context.Background(), w.resolveTimeout)
	info, err := w.resolver.Resolve(ctx, adv.Address)
	cancel()
	if err != nil {
		// Best-effort discovery: the advertisement is dropped.
		return
	}

	device := Device{
		ID:        DeviceID(adv.Address),
		Address:   adv.Address,
		Name:      info.Name,
		LastSeen:  adv.Timestamp,
		RSSI:      adv.RSSI,
		Connected: info.Connected,
		Pairable:  info.Pairable,
		Paired:    info.Paired,
	}

	w.mu.Lock()
	if !w.listening {
		// Listening was turned off while the resolution was in flight;
		// committing now would resurrect state after stop.
		w.mu.Unlock()
		return
	}
	change := w.roster.Upsert(device)
	session := w.sessionID
	w.mu.Unlock()

	now := time.Now().UTC()
	w.notifier.Publish(Event{
		Type:      EventDeviceDiscovered,
		Device:    &device,
		SessionID: session,
		Timestamp: now,
	})
	if change.Has(ChangeNameChanged) {
		w.notifier.Publish(Event{
			Type:      EventDeviceNameChanged,
			Device:    &device,
			SessionID: session,
			Timestamp: now,
		})
	}
	if change.Has(ChangeNew) {
		w.notifier.Publish(Event{
			Type:      EventNewDeviceDiscovered,
			Device:    &device,
			SessionID: session,
			Timestamp: now,
		})
	}
}

// sweepLoop runs the periodic eviction sweep for one listening session.
func (w *Watcher) sweepLoop(ctx context.Context) {
	defer w.sweepWg.Done()

	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweeper.Sweep(time.Now().UTC())
		}
	}
}
