// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/vm"
)

// Limits of the numeric options.
const (
	maxSpeed = 100_000
	maxScale = 40
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: gr8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// validateOptions checks the option values for valid ranges
func validateOptions(opts options.Program) error {
	if opts.Profile != "" {
		if _, err := vm.QuirksByName(opts.Profile); err != nil {
			return err
		}
	}
	if opts.Speed < vm.TimerFrequency || opts.Speed > maxSpeed {
		return fmt.Errorf("invalid speed %d, valid range: %d-%d", opts.Speed, vm.TimerFrequency, maxSpeed)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d, valid range: 1-%d", opts.Scale, maxScale)
	}
	if opts.Live && !opts.Headless {
		return fmt.Errorf("option -live requires -headless")
	}
	if opts.Trace && !opts.Debug {
		return fmt.Errorf("option -trace requires -debug")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Wav, "wav", "", "name of a WAV file to record the buzzer to")
	flags.StringVar(&opts.Profile, "p", "", "compatibility profile (vip/schip/modern) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.Frames, "frames", options.DefaultFrames, "frames to run in headless mode, 0 runs until interrupted")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 picks a random seed")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the final display to the console")
	flags.BoolVar(&opts.Live, "live", false, "redraw the display in the terminal every frame, requires -headless")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio playback")
}
