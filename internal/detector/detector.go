// Package detector handles compatibility profile detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles compatibility profile detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new profile detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the compatibility profile from options or file auto-detection.
// A profile passed in the options always wins, otherwise the profile is
// derived from the input filename extension.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Profile != "" {
		return strings.ToLower(opts.Profile)
	}

	profile := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected compatibility profile",
		log.Stringer("system", arch.CHIP8System),
		log.String("profile", profile),
		log.String("file", opts.Input))
	return profile
}

// detectFromFile determines the profile based on file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8", ".c8x":
		// SUPER-CHIP and HP48 programs rely on the CHIP-48 jump behavior
		return vm.ProfileSCHIP
	case ".xo8":
		return vm.ProfileModern
	default:
		return vm.ProfileVIP
	}
}
