package ble

import (
	"context"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// Adapter implements Source and Resolver over the platform Bluetooth stack
// via tinygo.org/x/bluetooth (BlueZ on Linux, WinRT on Windows, CoreBluetooth
// on macOS).
//
// The resolver side answers from metadata captured during scanning: the most
// recent scan result per address. This keeps Resolve cheap and makes its
// failure mode explicit - an address that has never been scanned (or whose
// cache entry was dropped) resolves to ErrDeviceNotFound.
type Adapter struct {
	adapter *bluetooth.Adapter

	enableOnce sync.Once
	enableErr  error

	mu       sync.Mutex
	scanning bool
	seen     map[uint64]DeviceInfo
}

// NewAdapter creates an Adapter bound to the default platform adapter.
func NewAdapter() *Adapter {
	return &Adapter{
		adapter: bluetooth.DefaultAdapter,
		seen:    make(map[uint64]DeviceInfo),
	}
}

// Start enables the adapter and begins scanning. Advertisements are delivered
// to fn from the scan goroutine until Stop is called or ctx is cancelled.
func (a *Adapter) Start(ctx context.Context, fn AdvertisementFunc) error {
	a.enableOnce.Do(func() {
		a.enableErr = a.adapter.Enable()
	})
	if a.enableErr != nil {
		return a.enableErr
	}

	a.mu.Lock()
	if a.scanning {
		a.mu.Unlock()
		return ErrAlreadyScanning
	}
	a.scanning = true
	a.mu.Unlock()

	go func() {
		// Scan blocks until StopScan; run it off the caller's goroutine.
		_ = a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			address, err := ParseAddress(result.Address.String())
			if err != nil {
				return
			}
			a.remember(address, result.LocalName())
			fn(Advertisement{
				Address:   address,
				Timestamp: time.Now().UTC(),
				RSSI:      result.RSSI,
			})
		})
	}()

	go func() {
		<-ctx.Done()
		_ = a.Stop()
	}()

	return nil
}

// Stop ends the scan. Safe to call when not scanning.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	if !a.scanning {
		a.mu.Unlock()
		return nil
	}
	a.scanning = false
	a.mu.Unlock()

	return a.adapter.StopScan()
}

// Resolve returns the cached metadata for address.
//
// Connection and pairing state are not surfaced by the portable scan API, so
// they remain false on this backend; the reconciliation core treats them as
// observation-time booleans either way.
func (a *Adapter) Resolve(ctx context.Context, address uint64) (DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return DeviceInfo{}, err
	}

	a.mu.Lock()
	info, ok := a.seen[address]
	a.mu.Unlock()

	if !ok {
		return DeviceInfo{}, ErrDeviceNotFound
	}
	return info, nil
}

// remember records scan metadata for later resolution. An empty name does
// not overwrite a previously captured one: peripherals alternate between
// advertisement frames with and without the local name.
func (a *Adapter) remember(address uint64, name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	info := a.seen[address]
	if name != "" {
		info.Name = name
	}
	a.seen[address] = info
}

// Compile-time interface satisfaction checks.
var (
	_ Source   = (*Adapter)(nil)
	_ Resolver = (*Adapter)(nil)
)
