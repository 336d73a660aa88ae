package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

const maxServiceNameLength = 100

// timestampLayouts are tried in order. Layouts without a zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// rejection is the per-record failure half of the validation result
type rejection struct {
	category models.RejectionCategory
	message  string
}

// Validate converts raw records into typed heartbeat events, rejecting
// malformed ones with categorized reasons. It always processes the whole
// batch; a bad record only adds an entry to the outcome. Positions in error
// messages are 0-based input indexes. Valid events keep input order.
func Validate(records []models.RawRecord) ([]models.HeartbeatEvent, models.ValidationOutcome) {
	events := make([]models.HeartbeatEvent, 0, len(records))
	outcome := models.ValidationOutcome{
		TotalRecords:   len(records),
		Errors:         []string{},
		SkippedReasons: map[models.RejectionCategory]int{},
	}

	for idx, record := range records {
		event, rej := validateRecord(record)
		if rej != nil {
			outcome.InvalidRecords++
			outcome.SkippedReasons[rej.category]++
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("record %d: %s - %s", idx, rej.category, rej.message))
			continue
		}
		outcome.ValidRecords++
		events = append(events, event)
	}

	return events, outcome
}

// validateRecord applies the per-record checks in precedence order; the first
// failing check determines the category.
func validateRecord(record models.RawRecord) (models.HeartbeatEvent, *rejection) {
	if record.Err != nil {
		return models.HeartbeatEvent{}, &rejection{models.ReasonOther, record.Err.Error()}
	}
	if record.Fields == nil {
		return models.HeartbeatEvent{}, &rejection{models.ReasonOther, "record is not an object"}
	}

	rawService, ok := record.Fields["service"]
	if !ok {
		return models.HeartbeatEvent{}, &rejection{models.ReasonMissingService, "service field is required"}
	}
	service, rej := normalizeService(rawService)
	if rej != nil {
		return models.HeartbeatEvent{}, rej
	}

	rawTimestamp, ok := record.Fields["timestamp"]
	if !ok {
		return models.HeartbeatEvent{}, &rejection{models.ReasonMissingTimestamp, "timestamp field is required"}
	}
	timestamp, rej := parseTimestamp(rawTimestamp)
	if rej != nil {
		return models.HeartbeatEvent{}, rej
	}

	return models.HeartbeatEvent{Service: service, Timestamp: timestamp}, nil
}

// normalizeService trims, lowercases and checks the allowed character set
func normalizeService(value interface{}) (string, *rejection) {
	if value == nil {
		return "", &rejection{models.ReasonEmptyService, "service name cannot be empty"}
	}
	s, ok := value.(string)
	if !ok {
		return "", &rejection{models.ReasonInvalidServiceFormat,
			fmt.Sprintf("service must be a string, got %T", value)}
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", &rejection{models.ReasonEmptyService, "service name cannot be empty"}
	}
	if len(s) > maxServiceNameLength {
		return "", &rejection{models.ReasonInvalidServiceFormat,
			fmt.Sprintf("service name exceeds %d characters", maxServiceNameLength)}
	}
	for _, c := range s {
		if !isServiceChar(c) {
			return "", &rejection{models.ReasonInvalidServiceFormat,
				fmt.Sprintf("service name contains invalid character %q", c)}
		}
	}
	return s, nil
}

func isServiceChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// parseTimestamp accepts ISO 8601 strings and common variants, plus numeric
// epoch seconds (JSON numbers or digit strings)
func parseTimestamp(value interface{}) (time.Time, *rejection) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, &rejection{models.ReasonEmptyTimestamp, "timestamp cannot be empty"}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, &rejection{models.ReasonEmptyTimestamp, "timestamp cannot be empty"}
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), nil
			}
		}
		if epoch, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(epoch), nil
		}
		return time.Time{}, &rejection{models.ReasonInvalidTimestampFormat,
			fmt.Sprintf("cannot parse timestamp %q", s)}
	case float64:
		return epochToTime(v), nil
	case int:
		return epochToTime(float64(v)), nil
	case int64:
		return epochToTime(float64(v)), nil
	default:
		return time.Time{}, &rejection{models.ReasonInvalidTimestampFormat,
			fmt.Sprintf("timestamp must be a string or number, got %T", value)}
	}
}

func epochToTime(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
