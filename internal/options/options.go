// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"CHIP-8 ROM file to run"`
	Wav   string `flag:"wav" usage:"record the buzzer to a WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	Debug    bool `flag:"debug" usage:"enable debug logging"`
	Quiet    bool `flag:"q" usage:"quiet mode"`
	Headless bool `flag:"headless" usage:"run without a window and print the final display"`
	Live     bool `flag:"live" usage:"redraw the display in the terminal every frame in headless mode"`
	Trace    bool `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Mute     bool `flag:"mute" usage:"disable audio playback"`
}

// Emulation contains options that control the virtual machine.
type Emulation struct {
	Profile string `flag:"p" usage:"compatibility profile: vip, schip, modern (default: auto-detect)"`
	Speed   int    `flag:"speed" usage:"instructions executed per second" default:"700"`
	Frames  int    `flag:"frames" usage:"frames to run in headless mode, 0 runs until interrupted" default:"600"`
	Seed    uint64 `flag:"seed" usage:"random number seed, 0 picks a random seed"`
	Scale   int    `flag:"scale" usage:"window scale factor" default:"10"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
}

// Default option values.
const (
	DefaultSpeed  = 700
	DefaultFrames = 600
	DefaultScale  = 10
)
