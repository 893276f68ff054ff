// Package watch implements the advertisement-to-roster reconciliation engine.
//
// A Watcher consumes raw advertisement events from a ble.Source, resolves
// each event's address to device metadata through a ble.Resolver, and
// maintains a deduplicated, thread-safe roster of currently visible devices.
// Devices that stop advertising are evicted once their last-seen timestamp
// ages past the heartbeat timeout (default 30 seconds, changeable at
// runtime).
//
// # Classification
//
// Every successful resolution is folded into the roster as a wholesale
// snapshot replacement and classified: New (first sighting of an ID),
// Updated (replacement of an existing entry), NameChanged (alongside
// Updated, when both the old and new names are non-empty and differ - an
// empty name never counts as a change), or Unchanged (byte-identical
// replacement). Classification drives the notification sequence per
// advertisement: DeviceDiscovered always, then DeviceNameChanged and/or
// NewDeviceDiscovered as applicable.
//
// # Concurrency
//
// Advertisements may arrive concurrently; each is processed as an
// independent unit of work whose only suspension point is the resolver
// call. The roster lock is held only for the short mutation, never across
// a resolution. Per device ID the roster therefore reflects the most
// recently completed resolution, not necessarily the most recently
// received advertisement; when two resolutions for one ID race, the
// later-completing write wins. Stop does not cancel in-flight resolutions:
// it flips the listening state so their commits become no-ops, and clears
// the roster synchronously.
//
// Resolver failures are non-fatal and per-event: the advertisement is
// dropped silently and later events are unaffected.
package watch
