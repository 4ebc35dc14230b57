package main

import (
	"testing"

	"github.com/alecthomas/kong"

	"github.com/qenapp/qen/internal/constants"
)

func TestFlagDefaultsComeFromConstants(t *testing.T) {
	parser, err := kong.New(&CLI, kong.Vars{
		"version":       constants.Version,
		"config_path":   constants.DefaultConfigPath,
		"scan_interval": constants.DefaultScanInterval.String(),
	})
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse([]string{"watch"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if CLI.Config != constants.DefaultConfigPath {
		t.Errorf("config default = %q, want %q", CLI.Config, constants.DefaultConfigPath)
	}
	if CLI.Watch.Interval != constants.DefaultScanInterval {
		t.Errorf("watch interval default = %v, want %v", CLI.Watch.Interval, constants.DefaultScanInterval)
	}
}
