package watch

import (
	"sync"
	"testing"
	"time"
)

func TestNotifierFanOut(t *testing.T) {
	n := NewNotifier(8)
	defer n.Close()

	var mu sync.Mutex
	counts := make(map[int]int)
	var wg sync.WaitGroup

	for i := 0; i < 3; i++ {
		i := i
		wg.Add(1)
		n.Subscribe(func(Event) {
			mu.Lock()
			counts[i]++
			if counts[i] == 2 {
				wg.Done()
			}
			mu.Unlock()
		})
	}

	n.Publish(Event{Type: EventStartedListening})
	n.Publish(Event{Type: EventStoppedListening})

	waitOrFatal(t, &wg, "subscribers did not receive both events")

	mu.Lock()
	defer mu.Unlock()
	for i := 0; i < 3; i++ {
		if counts[i] != 2 {
			t.Errorf("subscriber %d received %d events, want 2", i, counts[i])
		}
	}
}

func TestNotifierDeliveryOrder(t *testing.T) {
	n := NewNotifier(8)
	defer n.Close()

	var mu sync.Mutex
	var got []EventType
	var wg sync.WaitGroup
	wg.Add(1)

	n.Subscribe(func(event Event) {
		mu.Lock()
		got = append(got, event.Type)
		if len(got) == 3 {
			wg.Done()
		}
		mu.Unlock()
	})

	n.Publish(Event{Type: EventDeviceDiscovered})
	n.Publish(Event{Type: EventDeviceNameChanged})
	n.Publish(Event{Type: EventNewDeviceDiscovered})

	waitOrFatal(t, &wg, "subscriber did not receive all events")

	want := []EventType{EventDeviceDiscovered, EventDeviceNameChanged, EventNewDeviceDiscovered}
	mu.Lock()
	defer mu.Unlock()
	for i, typ := range want {
		if got[i] != typ {
			t.Errorf("event %d = %v, want %v", i, got[i], typ)
		}
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier(8)
	defer n.Close()

	var mu sync.Mutex
	count := 0
	id := n.Subscribe(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	n.Publish(Event{Type: EventDeviceDiscovered})
	n.Unsubscribe(id) // drains the queue before returning
	n.Publish(Event{Type: EventDeviceDiscovered})

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("subscriber received %d events, want 1", count)
	}
}

// TestNotifierPanicIsolation verifies a panicking subscriber affects
// neither other subscribers nor the publisher.
func TestNotifierPanicIsolation(t *testing.T) {
	n := NewNotifier(8)
	defer n.Close()

	n.Subscribe(func(Event) {
		panic("subscriber bug")
	})

	var wg sync.WaitGroup
	wg.Add(1)
	received := 0
	var mu sync.Mutex
	n.Subscribe(func(Event) {
		mu.Lock()
		received++
		if received == 2 {
			wg.Done()
		}
		mu.Unlock()
	})

	n.Publish(Event{Type: EventDeviceDiscovered})
	n.Publish(Event{Type: EventDeviceDiscovered})

	waitOrFatal(t, &wg, "healthy subscriber starved by panicking one")
}

// TestNotifierSlowSubscriberDoesNotBlock verifies Publish never blocks on
// a subscriber that stopped draining its queue.
func TestNotifierSlowSubscriberDoesNotBlock(t *testing.T) {
	n := NewNotifier(1)
	defer n.Close()

	block := make(chan struct{})
	n.Subscribe(func(Event) {
		<-block
	})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Publish(Event{Type: EventDeviceDiscovered})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	close(block)
}

func TestNotifierCloseRejectsNewWork(t *testing.T) {
	n := NewNotifier(8)
	n.Close()

	// After Close, Subscribe and Publish are harmless no-ops.
	n.Subscribe(func(Event) { t.Error("subscriber registered after Close") })
	n.Publish(Event{Type: EventDeviceDiscovered})
	time.Sleep(20 * time.Millisecond)
}

func waitOrFatal(t *testing.T, wg *sync.WaitGroup, msg string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(msg)
	}
}
