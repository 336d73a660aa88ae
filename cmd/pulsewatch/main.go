package main

import (
	"os"

	"github.com/pulsewatch-systems/pulsewatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
