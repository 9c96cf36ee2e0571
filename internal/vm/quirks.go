package vm

import (
	"fmt"
	"strings"
)

// Quirks selects between historically divergent instruction semantics.
type Quirks struct {
	// ShiftReadsVY makes 8XY6 and 8XYE shift VY and store the result in VX.
	// When unset VX is shifted in place and VY is ignored.
	ShiftReadsVY bool

	// JumpUsesVX makes BNNN jump to NNN + VX, where X is the highest nibble
	// of NNN. When unset the offset is always taken from V0.
	JumpUsesVX bool

	// WrapSprites makes sprite pixels that cross a display edge reappear on
	// the opposite edge. When unset they are clipped. The starting coordinate
	// of a sprite always wraps.
	WrapSprites bool
}

// Compatibility profiles of well known interpreters.
var (
	// QuirksVIP matches the original COSMAC VIP interpreter.
	QuirksVIP = Quirks{ShiftReadsVY: true}

	// QuirksSCHIP matches CHIP-48 and SUPER-CHIP on the HP48 calculators.
	QuirksSCHIP = Quirks{JumpUsesVX: true}

	// QuirksModern matches the behavior most modern interpreters implement.
	QuirksModern = Quirks{WrapSprites: true}
)

// Profile names accepted by QuirksByName.
const (
	ProfileVIP    = "vip"
	ProfileSCHIP  = "schip"
	ProfileModern = "modern"
)

// Profiles lists the names of all compatibility profiles.
var Profiles = []string{ProfileVIP, ProfileSCHIP, ProfileModern}

// QuirksByName returns the quirks of the compatibility profile with the
// given case insensitive name.
func QuirksByName(name string) (Quirks, error) {
	switch strings.ToLower(name) {
	case ProfileVIP:
		return QuirksVIP, nil
	case ProfileSCHIP:
		return QuirksSCHIP, nil
	case ProfileModern:
		return QuirksModern, nil
	default:
		return Quirks{}, fmt.Errorf("unsupported compatibility profile '%s', valid options: %s",
			name, strings.Join(Profiles, ", "))
	}
}
