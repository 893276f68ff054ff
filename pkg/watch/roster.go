package watch

import (
	"sort"
	"sync"
	"time"
)

// Roster is the authoritative, thread-safe mapping of currently visible
// devices, keyed by device ID. All operations acquire the same exclusive
// lock: no reader ever observes a half-updated entry and no two mutations
// interleave at the granularity of a single ID.
type Roster struct {
	mu      sync.Mutex
	devices map[string]Device
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		devices: make(map[string]Device),
	}
}

// Upsert inserts or wholesale-replaces the entry for device.ID and
// classifies the change against the prior entry.
func (r *Roster) Upsert(device Device) Change {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior, exists := r.devices[device.ID]
	r.devices[device.ID] = device

	if !exists {
		return ChangeNew
	}
	if prior == device {
		return ChangeUnchanged
	}

	change := ChangeUpdated
	if prior.Name != "" && device.Name != "" && prior.Name != device.Name {
		change |= ChangeNameChanged
	}
	return change
}

// EvictOlderThan removes and returns all entries whose last-seen timestamp
// is before threshold. Evictions are atomic; the returned devices are
// ordered by ID.
func (r *Roster) EvictOlderThan(threshold time.Time) []Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []Device
	for id, device := range r.devices {
		if device.LastSeen.Before(threshold) {
			evicted = append(evicted, device)
			delete(r.devices, id)
		}
	}

	sort.Slice(evicted, func(i, j int) bool {
		return evicted[i].ID < evicted[j].ID
	})
	return evicted
}

// Snapshot returns an independent point-in-time copy of all entries,
// ordered by ID. Callers cannot mutate roster state through the result.
func (r *Roster) Snapshot() []Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	devices := make([]Device, 0, len(r.devices))
	for _, device := range r.devices {
		devices = append(devices, device)
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].ID < devices[j].ID
	})
	return devices
}

// Get returns the current snapshot for an ID, if present.
func (r *Roster) Get(id string) (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[id]
	return device, ok
}

// Clear removes all entries.
func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = make(map[string]Device)
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}

// IsEmpty reports whether the roster has no entries.
func (r *Roster) IsEmpty() bool {
	return r.Len() == 0
}
