// Package runner drives a virtual machine in frames of the 60 Hz timer rate.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// FrameDuration is the wall clock duration of one timer frame.
const FrameDuration = time.Second / vm.TimerFrequency

// Keypad reports the pressed state of the 16 keys of the machine.
type Keypad interface {
	Pressed(key int) bool
}

// Buzzer is switched on and off once per frame depending on the sound timer.
type Buzzer interface {
	Update(active bool) error
}

// Presenter shows the display after a frame has been executed.
type Presenter interface {
	Present(fb *vm.Framebuffer) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithKeypad sets the keypad that is polled at the start of every frame.
func WithKeypad(keypad Keypad) Option {
	return func(r *Runner) {
		r.keypad = keypad
	}
}

// WithBuzzer sets the buzzer that is updated at the end of every frame.
func WithBuzzer(buzzer Buzzer) Option {
	return func(r *Runner) {
		r.buzzer = buzzer
	}
}

// WithPresenter sets the presenter that Run calls after every frame.
func WithPresenter(presenter Presenter) Option {
	return func(r *Runner) {
		r.presenter = presenter
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(r *Runner) {
		r.trace = trace
	}
}

// Runner executes a fixed number of instructions per frame and ticks the
// timers of the machine once per frame.
type Runner struct {
	logger        *log.Logger
	machine       *vm.Machine
	stepsPerFrame int
	trace         bool

	keypad    Keypad
	buzzer    Buzzer
	presenter Presenter

	frames uint64
}

// New creates a runner for the machine that executes stepsPerFrame
// instructions per frame.
func New(logger *log.Logger, machine *vm.Machine, stepsPerFrame int, options ...Option) *Runner {
	r := &Runner{
		logger:        logger,
		machine:       machine,
		stepsPerFrame: max(stepsPerFrame, 1),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Machine returns the machine that the runner drives.
func (r *Runner) Machine() *vm.Machine {
	return r.machine
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Frame polls the keypad, executes one frame worth of instructions, ticks
// the timers and updates the buzzer. A fatal machine error is logged and
// returned wrapped.
func (r *Runner) Frame() error {
	if r.keypad != nil {
		for key := range vm.KeyCount {
			if err := r.machine.SetKey(key, r.keypad.Pressed(key)); err != nil {
				return fmt.Errorf("setting key state: %w", err)
			}
		}
	}

	for range r.stepsPerFrame {
		if r.trace {
			r.traceInstruction()
		}
		if err := r.machine.Step(); err != nil {
			r.logFault(err)
			return fmt.Errorf("executing frame %d: %w", r.frames, err)
		}
	}

	r.machine.TickTimers()
	if r.buzzer != nil {
		if err := r.buzzer.Update(r.machine.SoundActive()); err != nil {
			return fmt.Errorf("updating buzzer: %w", err)
		}
	}

	r.frames++
	return nil
}

// Run executes frames until the given number of frames has been run, the
// context is cancelled or the machine fails. A frame count of 0 runs until
// the context is cancelled. If throttle is set, frames are paced to the
// timer rate, otherwise they run as fast as possible.
func (r *Runner) Run(ctx context.Context, frames int, throttle bool) error {
	var ticks <-chan time.Time
	if throttle {
		ticker := time.NewTicker(FrameDuration)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for run := 0; frames == 0 || run < frames; run++ {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running: %w", ctx.Err())
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}

		if err := r.Frame(); err != nil {
			return err
		}

		if r.presenter != nil {
			if err := r.presenter.Present(r.machine.Framebuffer()); err != nil {
				return fmt.Errorf("presenting frame: %w", err)
			}
		}
	}
	return nil
}

func (r *Runner) traceInstruction() {
	if r.machine.AwaitingKey() {
		return
	}
	ins, err := r.machine.Current()
	if err != nil {
		// reported by the following step
		return
	}
	r.logger.Debug("Executing instruction",
		log.Hex("pc", r.machine.PC()),
		log.String("instruction", traceText(ins, r.machine.Quirks())))
}

// traceText returns the assembly notation of the instruction as the machine
// executes it, conditional skips are marked.
func traceText(ins vm.Instruction, quirks vm.Quirks) string {
	text := ins.Format(quirks)
	if ins.IsSkip() {
		text += " ; skip"
	}
	return text
}

func (r *Runner) logFault(err error) {
	var runtimeErr *vm.RuntimeError
	if !errors.As(err, &runtimeErr) {
		return
	}
	r.logger.Error("Program execution failed",
		log.Hex("pc", runtimeErr.PC),
		log.Hex("word", runtimeErr.Word),
		log.Err(runtimeErr.Err))
}
