package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/blewatch/blewatch-go/pkg/ble"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
)

// Stats holds aggregate statistics about a scan log file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[scanlog.Kind]int
	Sessions     map[string]*SessionStats
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single scan session.
type SessionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	Devices    map[uint64]bool
	NewDevices int
	Timeouts   int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := scanlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[scanlog.Kind]int),
		Sessions:     make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track session stats
		session, ok := stats.Sessions[event.SessionID]
		if !ok {
			session = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Devices:   make(map[uint64]bool),
			}
			stats.Sessions[event.SessionID] = session
		}
		session.Events++
		if event.Timestamp.After(session.LastSeen) {
			session.LastSeen = event.Timestamp
		}
		if event.Address != 0 {
			session.Devices[event.Address] = true
		}
		switch event.Kind {
		case scanlog.KindNewDevice:
			session.NewDevices++
		case scanlog.KindTimeout:
			session.Timeouts++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Scan Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by kind
	fmt.Fprintln(w, "Events by Kind:")
	kinds := []scanlog.Kind{
		scanlog.KindStartedListening,
		scanlog.KindStoppedListening,
		scanlog.KindDiscovered,
		scanlog.KindNewDevice,
		scanlog.KindNameChanged,
		scanlog.KindTimeout,
	}
	for _, kind := range kinds {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Sessions
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		// Sort by first seen time
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			shortID := s.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortID, s.stats.Events, duration)
			if len(s.stats.Devices) > 0 {
				fmt.Fprintf(w, "           Devices: %d (%s)\n",
					len(s.stats.Devices), formatDeviceList(s.stats.Devices))
			}
			if s.stats.NewDevices > 0 {
				fmt.Fprintf(w, "           New: %d\n", s.stats.NewDevices)
			}
			if s.stats.Timeouts > 0 {
				fmt.Fprintf(w, "           Timeouts: %d\n", s.stats.Timeouts)
			}
		}
	}
}

// formatDeviceList renders up to three addresses, then an ellipsis.
func formatDeviceList(devices map[uint64]bool) string {
	addresses := make([]uint64, 0, len(devices))
	for addr := range devices {
		addresses = append(addresses, addr)
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i] < addresses[j] })

	out := ""
	for i, addr := range addresses {
		if i == 3 {
			out += ", ..."
			break
		}
		if i > 0 {
			out += ", "
		}
		out += ble.FormatAddress(addr)
	}
	return out
}
