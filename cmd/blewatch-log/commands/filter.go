package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/blewatch/blewatch-go/pkg/ble"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	Kind      string
	Address   string
	TimeStart string
	TimeEnd   string
}

// RunFilter filters the log file and writes matching events to a new file.
func RunFilter(path string, opts FilterOptions) error {
	filter := scanlog.Filter{
		SessionID: opts.SessionID,
	}

	if opts.Kind != "" {
		k, err := ParseKindFlag(opts.Kind)
		if err != nil {
			return err
		}
		filter.Kind = &k
	}

	if opts.Address != "" {
		addr, err := ble.ParseAddress(opts.Address)
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}
		filter.Address = addr
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	reader, err := scanlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := scanlog.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
	return nil
}
