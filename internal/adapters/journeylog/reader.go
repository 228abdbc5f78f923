// Package journeylog reads journey, action, HVA and intervention event
// logs from CSV or JSON-lines files. It implements the ports source
// interfaces; the model core never touches the filesystem itself.
package journeylog

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/meander/pkg/domain"
)

// Reader loads event logs from a single file. The format is derived from
// the extension: ".csv" for comma-separated with a header row, ".jsonl"
// or ".ndjson" for one JSON object per line.
type Reader struct {
	path string
}

// NewReader creates a reader for the given path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Observations reads a segment journey log. CSV files need the columns
// customer_id, timestamp and segment.
func (r *Reader) Observations(ctx context.Context) ([]domain.Observation, error) {
	var out []domain.Observation
	err := r.each(ctx, []string{"customer_id", "timestamp", "segment"}, func(get func(string) string) error {
		ts, err := parseTime(get("timestamp"))
		if err != nil {
			return err
		}
		out = append(out, domain.Observation{
			CustomerID: get("customer_id"),
			Timestamp:  ts,
			Segment:    get("segment"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ActionEvents reads a raw action log. CSV files need the columns
// customer_id, timestamp and action.
func (r *Reader) ActionEvents(ctx context.Context) ([]domain.ActionEvent, error) {
	var out []domain.ActionEvent
	err := r.each(ctx, []string{"customer_id", "timestamp", "action"}, func(get func(string) string) error {
		ts, err := parseTime(get("timestamp"))
		if err != nil {
			return err
		}
		out = append(out, domain.ActionEvent{
			CustomerID: get("customer_id"),
			Timestamp:  ts,
			Action:     get("action"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HVARecords reads an HVA occurrence log. CSV files need the columns
// customer_id, timestamp and hva_id.
func (r *Reader) HVARecords(ctx context.Context) ([]domain.HVARecord, error) {
	var out []domain.HVARecord
	err := r.each(ctx, []string{"customer_id", "timestamp", "hva_id"}, func(get func(string) string) error {
		ts, err := parseTime(get("timestamp"))
		if err != nil {
			return err
		}
		out = append(out, domain.HVARecord{
			CustomerID: get("customer_id"),
			Timestamp:  ts,
			HVAID:      get("hva_id"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InterventionResults reads an intervention outcome log. CSV files need
// the columns intervention_id, customer_id, timestamp and outcome.
func (r *Reader) InterventionResults(ctx context.Context) ([]domain.InterventionResult, error) {
	var out []domain.InterventionResult
	err := r.each(ctx, []string{"intervention_id", "customer_id", "timestamp", "outcome"}, func(get func(string) string) error {
		ts, err := parseTime(get("timestamp"))
		if err != nil {
			return err
		}
		out = append(out, domain.InterventionResult{
			InterventionID: get("intervention_id"),
			CustomerID:     get("customer_id"),
			Timestamp:      ts,
			Outcome:        get("outcome"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// each dispatches on the file format and invokes fn once per record with
// a field accessor.
func (r *Reader) each(ctx context.Context, fields []string, fn func(get func(string) string) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(r.path)); ext {
	case ".csv":
		return eachCSV(f, fields, fn)
	case ".jsonl", ".ndjson":
		return eachJSONL(f, fn)
	default:
		return fmt.Errorf("unsupported event log format %q: %w", ext, domain.ErrInvalidArgument)
	}
}

func eachCSV(f io.Reader, fields []string, fn func(get func(string) string) error) error {
	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil // empty log is a valid, empty dataset
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, field := range fields {
		if _, ok := colIdx[field]; !ok {
			return fmt.Errorf("missing column %q: %w", field, domain.ErrInvalidArgument)
		}
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		get := func(field string) string { return row[colIdx[field]] }
		if err := fn(get); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func eachJSONL(f io.Reader, fn func(get func(string) string) error) error {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return fmt.Errorf("line %d: %v: %w", line, err, domain.ErrInvalidArgument)
		}
		get := func(field string) string {
			switch v := record[field].(type) {
			case string:
				return v
			case float64:
				return strconv.FormatFloat(v, 'f', -1, 64)
			default:
				return ""
			}
		}
		if err := fn(get); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}

// parseTime accepts RFC3339 timestamps or unix seconds.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp: %w", domain.ErrInvalidArgument)
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp %q: %w", s, domain.ErrInvalidArgument)
}
