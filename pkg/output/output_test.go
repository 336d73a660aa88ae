package output

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

// captureStdout redirects both os.Stdout and the color package's cached
// writer, which is bound at init time.
func captureStdout(f func()) string {
	old := os.Stdout
	oldColor := color.Output
	r, w, _ := os.Pipe()
	os.Stdout = w
	color.Output = w

	f()

	w.Close()
	os.Stdout = old
	color.Output = oldColor

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := captureStdout(func() {
		Success("seeded %d records", 10)
	})

	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "seeded 10 records")
}

func TestError(t *testing.T) {
	out := captureStderr(func() {
		Error("load failed: %s", "no such file")
	})

	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "load failed: no such file")
}

func TestWarn(t *testing.T) {
	out := captureStdout(func() {
		Warn("2 records skipped")
	})

	assert.Contains(t, out, "⚠")
	assert.Contains(t, out, "2 records skipped")
}

func TestJSON(t *testing.T) {
	out := captureStdout(func() {
		assert.NoError(t, JSON(map[string]int{"alerts": 2}))
	})

	assert.Contains(t, out, `"alerts": 2`)
}

func TestTable_Render(t *testing.T) {
	out := captureStdout(func() {
		table := NewTable([]string{"SERVICE", "MISSED"})
		table.AddRow([]string{"email", "3"})
		table.AddRow([]string{"billing-api", "6"})
		table.Render()
	})

	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "billing-api")
}

func TestSummary_NoAlerts(t *testing.T) {
	result := &models.MonitorResult{
		Alerts: []models.Alert{},
		Validation: models.ValidationOutcome{
			TotalRecords: 3,
			ValidRecords: 3,
		},
		ServicesMonitored: []string{"email"},
	}

	out := captureStdout(func() {
		Summary(result)
	})

	assert.Contains(t, out, "No alerts detected")
	assert.Contains(t, out, "3 records")
}

func TestSummary_WithAlerts(t *testing.T) {
	alertAt := time.Date(2025, 8, 4, 10, 5, 0, 0, time.UTC)
	result := &models.MonitorResult{
		Alerts: []models.Alert{
			{
				Service:     "email",
				AlertAt:     alertAt,
				MissedCount: 3,
				LastSeen:    alertAt.Add(-3 * time.Minute),
			},
		},
		Validation: models.ValidationOutcome{
			TotalRecords:   5,
			ValidRecords:   4,
			InvalidRecords: 1,
			Errors:         []string{"record 2: missing_timestamp - field 'timestamp' absent"},
		},
		ServicesMonitored: []string{"email"},
	}

	stdout := captureStdout(func() {
		captureStderr(func() {
			Summary(result)
		})
	})

	assert.Contains(t, stdout, "email")
	assert.Contains(t, stdout, "2025-08-04T10:05:00Z")
	assert.Contains(t, stdout, "missing_timestamp")
}
