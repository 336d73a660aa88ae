package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RejectionCategory classifies why a raw record was rejected during validation
type RejectionCategory string

const (
	ReasonMissingService         RejectionCategory = "missing_service"
	ReasonMissingTimestamp       RejectionCategory = "missing_timestamp"
	ReasonEmptyService           RejectionCategory = "empty_service"
	ReasonEmptyTimestamp         RejectionCategory = "empty_timestamp"
	ReasonInvalidTimestampFormat RejectionCategory = "invalid_timestamp_format"
	ReasonInvalidServiceFormat   RejectionCategory = "invalid_service_format"
	ReasonOther                  RejectionCategory = "other_validation_error"
)

// IsValid checks if the rejection category is a known one
func (c RejectionCategory) IsValid() bool {
	switch c {
	case ReasonMissingService, ReasonMissingTimestamp, ReasonEmptyService,
		ReasonEmptyTimestamp, ReasonInvalidTimestampFormat,
		ReasonInvalidServiceFormat, ReasonOther:
		return true
	default:
		return false
	}
}

// RawRecord is one loosely typed input record. Decoding is lenient: a batch
// element that is not a JSON object still produces a RawRecord, with Err set,
// so a single bad element never aborts the batch.
type RawRecord struct {
	Fields map[string]interface{}
	Err    error
}

// NewRawRecord builds a record directly from a key/value map
func NewRawRecord(fields map[string]interface{}) RawRecord {
	return RawRecord{Fields: fields}
}

// UnmarshalJSON decodes a batch element, capturing non-object elements as a
// record-level error for the validator to categorize.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	r.Fields = nil
	if err := json.Unmarshal(data, &r.Fields); err != nil {
		r.Err = fmt.Errorf("record is not an object: %w", err)
	}
	return nil
}

// HeartbeatEvent is a validated heartbeat from a named service.
// The service name is normalized (trimmed, lowercased) and the timestamp
// always carries a zone; naive inputs are taken as UTC.
type HeartbeatEvent struct {
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationOutcome aggregates validation statistics over a batch
type ValidationOutcome struct {
	TotalRecords   int                       `json:"total_records"`
	ValidRecords   int                       `json:"valid_records"`
	InvalidRecords int                       `json:"invalid_records"`
	Errors         []string                  `json:"errors"`
	SkippedReasons map[RejectionCategory]int `json:"skipped_reasons"`
}

// MonitorConfig holds the run parameters for alert detection
type MonitorConfig struct {
	ExpectedInterval time.Duration `json:"expected_interval" mapstructure:"expected_interval"`
	AllowedMisses    int           `json:"allowed_misses" mapstructure:"allowed_misses"`
	Tolerance        time.Duration `json:"tolerance" mapstructure:"tolerance"`
}

// Validate checks the caller contract before any detection work begins
func (c MonitorConfig) Validate() error {
	if c.ExpectedInterval <= 0 {
		return fmt.Errorf("expected_interval must be greater than 0")
	}
	if c.AllowedMisses < 1 {
		return fmt.Errorf("allowed_misses must be at least 1")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	return nil
}

// Alert is one detected outage event. AlertAt is the expected-heartbeat slot
// at which the miss threshold was crossed, LastSeen the most recent heartbeat
// actually received before the gap.
type Alert struct {
	Service     string    `json:"service"`
	AlertAt     time.Time `json:"alert_at"`
	MissedCount int       `json:"missed_count"`
	LastSeen    time.Time `json:"last_seen"`
}

// MonitorResult is the top-level aggregate returned for one invocation
type MonitorResult struct {
	Alerts            []Alert           `json:"alerts"`
	Validation        ValidationOutcome `json:"validation"`
	ServicesMonitored []string          `json:"services_monitored"`
	DurationMS        float64           `json:"monitoring_duration_ms"`
	Timestamp         time.Time         `json:"timestamp"`
}
