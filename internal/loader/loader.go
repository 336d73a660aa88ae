// Package loader reads raw heartbeat batches from JSON files and writes
// alert output. Decoding is intentionally lenient at the record level: the
// batch must be a JSON array, but malformed elements are passed through to
// the validator for categorization rather than rejected here.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

// DecodeRecords decodes a JSON array of raw records from r
func DecodeRecords(r io.Reader) ([]models.RawRecord, error) {
	var records []models.RawRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode events: expected a JSON array: %w", err)
	}
	return records, nil
}

// LoadRecords reads a batch of raw records from a JSON file
func LoadRecords(path string) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// SaveAlerts writes alerts to a JSON file, creating parent directories as
// needed
func SaveAlerts(alerts []models.Alert, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create alerts file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(alerts); err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}
	return nil
}
