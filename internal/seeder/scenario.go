package seeder

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so scenario files can use "90s" or "2m"
// notation.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Scenario describes a synthetic heartbeat batch: which services emit,
// at what cadence, and which failures to inject.
type Scenario struct {
	Start         time.Time         `yaml:"start"`
	Interval      Duration          `yaml:"interval"`
	Beats         int               `yaml:"beats"`
	Services      []ServiceScenario `yaml:"services"`
	MalformedRate float64           `yaml:"malformed_rate"`
	Shuffle       bool              `yaml:"shuffle"`
}

// ServiceScenario configures one service's heartbeat stream. Outages are
// half-open beat index ranges during which the service emits nothing.
type ServiceScenario struct {
	Name    string        `yaml:"name"`
	Jitter  Duration      `yaml:"jitter"`
	Outages []OutageRange `yaml:"outages"`
}

type OutageRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// LoadScenario reads a scenario definition from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate fills defaults and rejects unusable scenarios.
func (s *Scenario) Validate() error {
	if s.Interval <= 0 {
		s.Interval = Duration(time.Minute)
	}
	if s.Beats <= 0 {
		s.Beats = 10
	}
	if s.Start.IsZero() {
		s.Start = time.Now().UTC().Add(-time.Duration(s.Beats) * s.Interval.Std())
	}
	if s.MalformedRate < 0 || s.MalformedRate > 1 {
		return fmt.Errorf("malformed_rate must be between 0 and 1, got %v", s.MalformedRate)
	}
	for i, svc := range s.Services {
		if svc.Name == "" {
			return fmt.Errorf("service %d: name is required", i)
		}
		for _, o := range svc.Outages {
			if o.From < 0 || o.To < o.From {
				return fmt.Errorf("service %q: invalid outage range [%d, %d)", svc.Name, o.From, o.To)
			}
		}
	}
	return nil
}
