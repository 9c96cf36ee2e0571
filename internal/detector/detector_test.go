package detector

import (
	"testing"

	"github.com/retroenv/gr8/internal/options"
	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name        string
		profileOpt  string
		inputFile   string
		wantProfile string
	}{
		{
			name:        "explicit schip option",
			profileOpt:  "schip",
			inputFile:   "game.ch8",
			wantProfile: vm.ProfileSCHIP,
		},
		{
			name:        "explicit option is lowercased",
			profileOpt:  "MODERN",
			inputFile:   "game.sc8",
			wantProfile: vm.ProfileModern,
		},
		{
			name:        "detect from .ch8 extension",
			inputFile:   "game.ch8",
			wantProfile: vm.ProfileVIP,
		},
		{
			name:        "detect from .sc8 extension",
			inputFile:   "game.sc8",
			wantProfile: vm.ProfileSCHIP,
		},
		{
			name:        "detect from uppercase .C8X extension",
			inputFile:   "GAME.C8X",
			wantProfile: vm.ProfileSCHIP,
		},
		{
			name:        "detect from .xo8 extension",
			inputFile:   "game.xo8",
			wantProfile: vm.ProfileModern,
		},
		{
			name:        "unknown extension defaults to vip",
			inputFile:   "game.bin",
			wantProfile: vm.ProfileVIP,
		},
		{
			name:        "no extension defaults to vip",
			inputFile:   "game",
			wantProfile: vm.ProfileVIP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Emulation:  options.Emulation{Profile: tt.profileOpt},
			}
			assert.Equal(t, tt.wantProfile, d.Detect(opts))
		})
	}
}
