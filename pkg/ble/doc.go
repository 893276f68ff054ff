// Package ble defines the radio-facing contracts of the watcher and a
// BlueZ/WinRT-backed implementation of them built on tinygo.org/x/bluetooth.
//
// The reconciliation core (pkg/watch) only ever talks to two capabilities:
//
//   - Source: a start/stop-controllable stream of raw advertisement events
//     {address, timestamp, RSSI}.
//   - Resolver: an asynchronous lookup translating a hardware address into
//     device metadata (name, connection/pairing state). The resolver is
//     treated as unreliable and possibly slow; a failed resolution simply
//     drops the advertisement that triggered it.
//
// Adapter implements both over the platform Bluetooth stack. GATT service
// enumeration, characteristic I/O and the pairing handshake are deliberately
// not exposed here; they have no bearing on roster reconciliation.
package ble
