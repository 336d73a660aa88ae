package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsewatch-systems/pulsewatch/internal/loader"
	"github.com/pulsewatch-systems/pulsewatch/internal/models"
	"github.com/pulsewatch-systems/pulsewatch/internal/monitor"
	"github.com/pulsewatch-systems/pulsewatch/pkg/output"
)

var (
	checkFile      string
	checkInterval  string
	checkMisses    int
	checkTolerance string
	checkOut       string
	checkJSON      bool
	checkQuiet     bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run alert detection over a batch of heartbeat records",
	Long: `Reads a JSON array of heartbeat records from a file, runs miss
detection, and reports the resulting alerts. Exits non-zero when alerts
are detected so the command can gate scripts and CI jobs.`,
	RunE:         runCheck,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "path to JSON heartbeat batch (required)")
	checkCmd.Flags().StringVar(&checkInterval, "interval", "", "expected heartbeat interval, e.g. 60s (default from config)")
	checkCmd.Flags().IntVar(&checkMisses, "allowed-misses", 0, "consecutive misses before alerting (default from config)")
	checkCmd.Flags().StringVar(&checkTolerance, "tolerance", "", "slack added to each expected beat, e.g. 5s (default from config)")
	checkCmd.Flags().StringVarP(&checkOut, "output", "o", "", "write detected alerts to this JSON file")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full result as JSON")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "suppress the summary, print nothing on success")
	checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	detection, err := detectionConfig()
	if err != nil {
		return err
	}

	records, err := loader.LoadRecords(checkFile)
	if err != nil {
		return err
	}

	result, err := monitor.Run(records, detection)
	if err != nil {
		return err
	}

	if checkOut != "" {
		if err := loader.SaveAlerts(result.Alerts, checkOut); err != nil {
			return err
		}
	}

	switch {
	case checkJSON:
		if err := output.JSON(result); err != nil {
			return err
		}
	case !checkQuiet:
		output.Summary(result)
	}

	if n := len(result.Alerts); n > 0 {
		return fmt.Errorf("%d alerts detected", n)
	}
	return nil
}

// detectionConfig merges flag overrides onto the configured defaults
func detectionConfig() (models.MonitorConfig, error) {
	detection := cfg.Monitor.Detection()

	if checkInterval != "" {
		d, err := parseDurationFlag(checkInterval)
		if err != nil {
			return detection, fmt.Errorf("invalid --interval: %w", err)
		}
		detection.ExpectedInterval = d
	}
	if checkMisses > 0 {
		detection.AllowedMisses = checkMisses
	}
	if checkTolerance != "" {
		d, err := parseDurationFlag(checkTolerance)
		if err != nil {
			return detection, fmt.Errorf("invalid --tolerance: %w", err)
		}
		detection.Tolerance = d
	}

	if err := detection.Validate(); err != nil {
		return detection, err
	}
	return detection, nil
}

// parseDurationFlag accepts Go duration strings and bare integer seconds
func parseDurationFlag(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
