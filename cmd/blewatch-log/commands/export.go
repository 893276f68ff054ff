package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/blewatch/blewatch-go/pkg/ble"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
)

// exportRecord is the JSONL shape of a scan event. Addresses are
// rendered in colon-hex form for readability.
type exportRecord struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Address   string `json:"address,omitempty"`
	Name      string `json:"name,omitempty"`
	RSSI      int16  `json:"rssi,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func toRecord(event scanlog.Event) exportRecord {
	record := exportRecord{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID: event.SessionID,
		Kind:      event.Kind.String(),
		Name:      event.Name,
		RSSI:      event.RSSI,
		Detail:    event.Detail,
	}
	if event.Address != 0 {
		record.Address = ble.FormatAddress(event.Address)
	}
	return record
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := scanlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *scanlog.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *scanlog.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "kind", "address", "name", "rssi", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		record := toRecord(event)
		rssi := ""
		if event.RSSI != 0 {
			rssi = strconv.Itoa(int(event.RSSI))
		}
		row := []string{
			record.Timestamp,
			record.SessionID,
			record.Kind,
			record.Address,
			record.Name,
			rssi,
			record.Detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
