package monitor

import (
	"time"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

// Run chains validation and detection over one finite batch and measures how
// long the whole pass took. It is the only entry point the CLI and API layers
// need. The returned error is a configuration contract violation; malformed
// input data never fails the call.
func Run(records []models.RawRecord, cfg models.MonitorConfig) (*models.MonitorResult, error) {
	start := time.Now()

	detector, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}

	events, outcome := Validate(records)
	alerts, services := detector.Detect(events)

	end := time.Now()
	return &models.MonitorResult{
		Alerts:            alerts,
		Validation:        outcome,
		ServicesMonitored: services,
		DurationMS:        float64(end.Sub(start).Microseconds()) / 1000.0,
		Timestamp:         end.UTC(),
	}, nil
}
