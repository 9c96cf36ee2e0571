package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Player plays a beeper on the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the default audio device and starts playing the beeper.
func NewPlayer(beeper *Beeper) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(beeper)
	player.Play()

	return &Player{
		ctx:    ctx,
		player: player,
	}, nil
}

// Close stops the playback.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
