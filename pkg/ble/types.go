package ble

import (
	"context"
	"errors"
	"time"
)

// Package errors.
var (
	// ErrDeviceNotFound indicates the resolver has no metadata for the
	// requested address (the device vanished or was never observed).
	ErrDeviceNotFound = errors.New("device not found")

	// ErrAlreadyScanning indicates Start was called while a scan is active.
	ErrAlreadyScanning = errors.New("already scanning")

	// ErrInvalidAddress indicates a hardware address string could not be parsed.
	ErrInvalidAddress = errors.New("invalid hardware address")
)

// Advertisement is a single raw advertisement reception.
type Advertisement struct {
	// Address is the 48-bit hardware address of the advertising peripheral.
	Address uint64

	// Timestamp is when the advertisement was received (UTC).
	Timestamp time.Time

	// RSSI is the received signal strength in dBm.
	RSSI int16
}

// DeviceInfo is the metadata a Resolver returns for an address.
type DeviceInfo struct {
	// Name is the advertised or cached device name. May be empty.
	Name string

	// Connected reports whether the platform currently holds a connection.
	Connected bool

	// Pairable reports whether the device accepts pairing.
	Pairable bool

	// Paired reports whether the device is bonded with this host.
	Paired bool
}

// AdvertisementFunc receives advertisement events. It may be invoked
// concurrently from independent goroutines and must not block.
type AdvertisementFunc func(Advertisement)

// Source is a start/stop-controllable stream of advertisement events.
type Source interface {
	// Start begins delivering advertisements to fn until Stop is called
	// or ctx is cancelled. Events may be delivered concurrently.
	Start(ctx context.Context, fn AdvertisementFunc) error

	// Stop ends advertisement delivery. Safe to call when not scanning.
	Stop() error
}

// Resolver translates a hardware address into current device metadata.
type Resolver interface {
	// Resolve fetches metadata for the given address. Returns
	// ErrDeviceNotFound if the device is unknown or has vanished.
	Resolve(ctx context.Context, address uint64) (DeviceInfo, error)
}
