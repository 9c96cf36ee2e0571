// Package pipeline orchestrates loading and running a ROM.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/gr8/internal/audio"
	"github.com/retroenv/gr8/internal/config"
	"github.com/retroenv/gr8/internal/detector"
	"github.com/retroenv/gr8/internal/display"
	"github.com/retroenv/gr8/internal/frontend"
	"github.com/retroenv/gr8/internal/loader"
	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/runner"
	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM of the options and runs it. In headless mode the
// final display is written to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	profile := p.detector.Detect(opts)

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, profile, writer)
}

// ExecuteWithProgram runs an already loaded program with the given
// compatibility profile.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	profile string, writer io.Writer) (err error) {

	machine, err := p.createMachine(opts, profile, program)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	p.printInfo(opts, profile, program)
	p.analyzeProgram(program)

	// playback is pointless when frames are not paced to real time
	mute := opts.Mute || (opts.Headless && !opts.Live)
	output, err := audio.Open(p.logger, mute, opts.Wav)
	if err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	defer func() {
		if closeErr := output.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing audio output: %w", closeErr))
		}
	}()

	runnerOpts := []runner.Option{
		runner.WithBuzzer(output),
		runner.WithTrace(opts.Trace),
	}

	if opts.Headless {
		return p.runHeadless(ctx, machine, opts, runnerOpts, writer)
	}
	return p.runWindowed(ctx, machine, opts, runnerOpts)
}

// createMachine creates the virtual machine and loads the program into it.
func (p *Pipeline) createMachine(opts options.Program, profile string, program []byte) (*vm.Machine, error) {
	machineOpts, err := config.MachineOptions(opts, profile)
	if err != nil {
		return nil, fmt.Errorf("configuring machine: %w", err)
	}

	machine := vm.New(machineOpts...)
	if err := machine.Load(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

// runHeadless runs the configured number of frames and writes the final
// display. Frames are only paced to real time if the display is redrawn
// live.
func (p *Pipeline) runHeadless(ctx context.Context, machine *vm.Machine, opts options.Program,
	runnerOpts []runner.Option, writer io.Writer) error {

	if opts.Live {
		terminal := display.NewTerminal(writer)
		p.checkTerminal(terminal)
		runnerOpts = append(runnerOpts, runner.WithPresenter(terminal))
	}

	r := runner.New(p.logger, machine, config.StepsPerFrame(opts.Speed), runnerOpts...)
	if err := r.Run(ctx, opts.Frames, opts.Live); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Info("Execution finished", log.Int("frames", int(r.Frames())))

	if opts.Live {
		return nil
	}
	if err := display.Render(writer, machine.Framebuffer()); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}

// checkTerminal warns if the live display can not be shown completely.
func (p *Pipeline) checkTerminal(terminal *display.Terminal) {
	if !terminal.Interactive() {
		p.logger.Debug("Output is not a terminal, frames are appended")
		return
	}

	fits, err := terminal.Fits()
	if err != nil {
		p.logger.Warn("Checking terminal size failed", log.Err(err))
		return
	}
	if !fits {
		p.logger.Warn("Terminal is too small for the display",
			log.Int("columns", vm.DisplayWidth),
			log.Int("lines", display.Lines))
	}
}

// runWindowed runs the program in a window until it is closed.
func (p *Pipeline) runWindowed(ctx context.Context, machine *vm.Machine, opts options.Program,
	runnerOpts []runner.Option) error {

	runnerOpts = append(runnerOpts, runner.WithKeypad(frontend.NewKeyboard()))
	r := runner.New(p.logger, machine, config.StepsPerFrame(opts.Speed), runnerOpts...)

	title := "gr8 - " + filepath.Base(opts.Input)
	if err := frontend.Run(ctx, r, title, opts.Scale); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Info("Execution finished", log.Int("frames", int(r.Frames())))
	return nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, profile string, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running ROM",
		log.Stringer("system", arch.CHIP8System),
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("profile", profile),
		log.Int("speed", opts.Speed),
	)
}

// analyzeProgram reports whether the program decodes as pure code. Most
// programs embed sprite data, so failing to decode is not an error.
func (p *Pipeline) analyzeProgram(program []byte) {
	instructions, err := vm.DecodeProgram(program)
	if err != nil {
		p.logger.Debug("Program contains data",
			log.Int("instructions", len(instructions)),
			log.Err(err))
		return
	}
	p.logger.Debug("Program decoded",
		log.Int("instructions", len(instructions)))
}
