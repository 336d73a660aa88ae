package seeder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenario() *Scenario {
	return &Scenario{
		Start:    time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC),
		Interval: Duration(time.Minute),
		Beats:    10,
		Services: []ServiceScenario{
			{Name: "email"},
			{Name: "billing-api", Outages: []OutageRange{{From: 3, To: 7}}},
		},
	}
}

func TestGenerate_BeatCounts(t *testing.T) {
	g := NewGenerator(testScenario(), 42)
	records := g.Generate()

	// email emits every beat, billing-api loses 4 to its outage
	assert.Len(t, records, 10+6)

	perService := map[string]int{}
	for _, r := range records {
		perService[r["service"].(string)]++
	}
	assert.Equal(t, 10, perService["email"])
	assert.Equal(t, 6, perService["billing-api"])
}

func TestGenerate_TimestampsFollowInterval(t *testing.T) {
	g := NewGenerator(testScenario(), 42)
	records := g.Generate()

	for _, r := range records {
		ts, err := time.Parse(time.RFC3339, r["timestamp"].(string))
		require.NoError(t, err)
		gap := ts.Sub(time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC))
		assert.Zero(t, gap%time.Minute, "timestamp %v not on the beat grid", ts)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(testScenario(), 7).Generate()
	b := NewGenerator(testScenario(), 7).Generate()

	assert.Equal(t, a, b)
}

func TestGenerate_MalformedRate(t *testing.T) {
	s := testScenario()
	s.MalformedRate = 1.0
	g := NewGenerator(s, 42)

	known := map[string]bool{"email": true, "billing-api": true}
	for _, r := range g.Generate() {
		service, hasService := r["service"].(string)
		stamp, hasStamp := r["timestamp"].(string)
		_, parseErr := time.Parse(time.RFC3339, stamp)
		wellFormed := hasService && known[service] && hasStamp && parseErr == nil
		if wellFormed {
			t.Fatalf("expected only malformed records, got %v", r)
		}
	}
}

func TestRandomScenario_HasOutage(t *testing.T) {
	s := RandomScenario(3, 20)
	require.NoError(t, s.Validate())
	require.Len(t, s.Services, 3)
	assert.NotEmpty(t, s.Services[0].Outages)
	for _, svc := range s.Services {
		assert.NotEmpty(t, svc.Name)
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	content := `
start: 2025-08-04T10:00:00Z
interval: 90s
beats: 5
malformed_rate: 0.1
services:
  - name: email
  - name: billing-api
    jitter: 5s
    outages:
      - from: 1
        to: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, s.Interval.Std())
	assert.Equal(t, 5, s.Beats)
	require.Len(t, s.Services, 2)
	assert.Equal(t, 5*time.Second, s.Services[1].Jitter.Std())
	assert.Equal(t, []OutageRange{{From: 1, To: 3}}, s.Services[1].Outages)
}

func TestLoadScenario_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services:\n  - name: \"\"\n"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestScenario_ValidateDefaults(t *testing.T) {
	s := &Scenario{Services: []ServiceScenario{{Name: "email"}}}
	require.NoError(t, s.Validate())
	assert.Equal(t, time.Minute, s.Interval.Std())
	assert.Equal(t, 10, s.Beats)
	assert.False(t, s.Start.IsZero())
}
