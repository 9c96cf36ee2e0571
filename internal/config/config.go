// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the virtual machine options for the given
// compatibility profile and program options.
func MachineOptions(opts options.Program, profile string) ([]vm.Option, error) {
	quirks, err := vm.QuirksByName(profile)
	if err != nil {
		return nil, fmt.Errorf("resolving quirks: %w", err)
	}

	machineOptions := []vm.Option{vm.WithQuirks(quirks)}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, vm.WithSeed(opts.Seed))
	}
	return machineOptions, nil
}

// StepsPerFrame returns the number of instructions to execute per timer
// frame for the given instructions per second.
func StepsPerFrame(speed int) int {
	steps := speed / vm.TimerFrequency
	if steps < 1 {
		return 1
	}
	return steps
}
