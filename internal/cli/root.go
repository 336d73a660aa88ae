package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulsewatch-systems/pulsewatch/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pulsewatch",
	Short: "Heartbeat monitoring and alert detection",
	Long: `pulsewatch detects missed heartbeats in service telemetry.

Feed it batches of heartbeat records and it reports services that went
quiet for longer than the configured interval allows, either from the
command line or over an HTTP API.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus PULSEWATCH_* env)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg, _ = config.Load("")
	}
}
