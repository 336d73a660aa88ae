package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

func Success(format string, a ...interface{}) {
	successColor.Printf("✓ "+format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	infoColor.Printf(format+"\n", a...)
}

func Warn(format string, a ...interface{}) {
	warnColor.Printf("⚠ "+format+"\n", a...)
}

func JSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerColor := color.New(color.FgWhite, color.Bold)
	for i, header := range t.headers {
		headerColor.Printf("%-*s  ", widths[i], header)
	}
	fmt.Println()

	for i := range t.headers {
		fmt.Print(strings.Repeat("-", widths[i]) + "  ")
	}
	fmt.Println()

	for _, row := range t.rows {
		for i, cell := range row {
			fmt.Printf("%-*s  ", widths[i], cell)
		}
		fmt.Println()
	}
}

// Summary prints a human-readable report for a monitor run: validation
// counts, any per-record rejection messages, and the detected alerts.
func Summary(result *models.MonitorResult) {
	v := result.Validation
	Info("Processed %d records (%d valid, %d invalid) across %d services in %.2fms",
		v.TotalRecords, v.ValidRecords, v.InvalidRecords,
		len(result.ServicesMonitored), result.DurationMS)

	if v.InvalidRecords > 0 {
		Warn("%d records skipped:", v.InvalidRecords)
		for _, msg := range v.Errors {
			fmt.Printf("  %s\n", msg)
		}
	}

	if len(result.Alerts) == 0 {
		Success("No alerts detected")
		return
	}

	Error("%d alerts detected", len(result.Alerts))
	table := NewTable([]string{"SERVICE", "ALERT AT", "MISSED", "LAST SEEN"})
	for _, alert := range result.Alerts {
		table.AddRow([]string{
			alert.Service,
			alert.AlertAt.Format("2006-01-02T15:04:05Z07:00"),
			strconv.Itoa(alert.MissedCount),
			alert.LastSeen.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	table.Render()
}
