package monitor

import (
	"fmt"
	"sort"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

// Detector runs the consecutive-miss sliding-window scan over validated
// heartbeat events. It holds only configuration; every Detect call is
// independent and re-entrant.
type Detector struct {
	cfg models.MonitorConfig
}

// NewDetector validates the configuration contract up front and returns a
// detector. A non-positive interval or allowed-misses is a caller error and
// is rejected here, before any detection work.
func NewDetector(cfg models.MonitorConfig) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitor config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect groups events by service, sorts each group chronologically and scans
// for missed heartbeat windows. It returns the alerts plus the distinct
// service names observed. Services are scanned in sorted-name order so the
// cross-service alert ordering is reproducible; within a service, alerts are
// in non-decreasing alert_at order.
func (d *Detector) Detect(events []models.HeartbeatEvent) ([]models.Alert, []string) {
	buckets := groupByService(events)

	services := make([]string, 0, len(buckets))
	for service := range buckets {
		services = append(services, service)
	}
	sort.Strings(services)

	alerts := []models.Alert{}
	for _, service := range services {
		alerts = append(alerts, d.detectService(service, buckets[service])...)
	}

	return alerts, services
}

// groupByService partitions events into independent per-service buckets
func groupByService(events []models.HeartbeatEvent) map[string][]models.HeartbeatEvent {
	buckets := make(map[string][]models.HeartbeatEvent)
	for _, event := range events {
		buckets[event.Service] = append(buckets[event.Service], event)
	}
	return buckets
}

// detectService runs the sliding-window scan for one service.
//
// Starting from the first heartbeat, each subsequent event closes zero or
// more expected windows. A window whose deadline (expected + tolerance)
// passed before the event counts as a miss; at allowed_misses consecutive
// misses an alert fires and the counter resets with tracking resumed from
// the alerted slot, so one long outage yields one alert per allowed_misses
// block. Any received heartbeat fully resets the counter.
func (d *Detector) detectService(service string, events []models.HeartbeatEvent) []models.Alert {
	if len(events) < 2 {
		return nil
	}

	sorted := make([]models.HeartbeatEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var alerts []models.Alert
	lastHeartbeat := sorted[0].Timestamp
	consecutiveMisses := 0

	for _, event := range sorted[1:] {
		expected := lastHeartbeat.Add(d.cfg.ExpectedInterval)

		for expected.Add(d.cfg.Tolerance).Before(event.Timestamp) {
			consecutiveMisses++

			if consecutiveMisses >= d.cfg.AllowedMisses {
				alerts = append(alerts, models.Alert{
					Service:     service,
					AlertAt:     expected,
					MissedCount: consecutiveMisses,
					LastSeen:    lastHeartbeat,
				})
				consecutiveMisses = 0
				lastHeartbeat = expected
			}

			expected = expected.Add(d.cfg.ExpectedInterval)
		}

		consecutiveMisses = 0
		lastHeartbeat = event.Timestamp
	}

	return alerts
}
