// Package scanlog records watcher events in a compact CBOR stream.
//
// Every notification a scan session produces (listening transitions,
// discoveries, name changes, timeouts) can be captured as an Event and
// written through a Logger. FileLogger appends events to a CBOR file that
// Reader can later stream back, optionally filtered by session, kind or
// time window. SlogAdapter mirrors events onto a log/slog logger for
// console output during development, and MultiLogger fans one stream out
// to several sinks.
//
// Events use integer CBOR keys for compactness and RFC3339Nano timestamps
// for nanosecond precision.
package scanlog
