package scanlog

import (
	"github.com/blewatch/blewatch-go/pkg/watch"
)

// Subscriber adapts a Logger into a watcher event handler, so a scan
// session can be recorded with:
//
//	id := watcher.Subscribe(scanlog.Subscriber(logger))
func Subscriber(logger Logger) watch.EventFunc {
	return func(event watch.Event) {
		record := Event{
			Timestamp: event.Timestamp,
			SessionID: event.SessionID,
			Kind:      kindOf(event.Type),
		}
		if event.Device != nil {
			record.Address = event.Device.Address
			record.Name = event.Device.Name
			record.RSSI = event.Device.RSSI
		}
		logger.Log(record)
	}
}

// kindOf maps watcher event types onto log kinds.
func kindOf(t watch.EventType) Kind {
	switch t {
	case watch.EventStartedListening:
		return KindStartedListening
	case watch.EventStoppedListening:
		return KindStoppedListening
	case watch.EventNewDeviceDiscovered:
		return KindNewDevice
	case watch.EventDeviceNameChanged:
		return KindNameChanged
	case watch.EventDeviceTimeout:
		return KindTimeout
	default:
		return KindDiscovered
	}
}
