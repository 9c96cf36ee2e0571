package audio

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Output combines the audio device playback and the WAV recording of the
// buzzer. Both parts are optional.
type Output struct {
	beeper   *Beeper
	player   *Player
	recorder *Recorder
}

// Open creates the buzzer output. Unless muted the beeper is played on the
// default audio device, a missing device is logged and playback disabled.
// A non empty wavPath records the buzzer to that file.
func Open(logger *log.Logger, mute bool, wavPath string) (*Output, error) {
	o := &Output{}

	if !mute {
		beeper := NewBeeper()
		player, err := NewPlayer(beeper)
		if err != nil {
			logger.Warn("Audio playback disabled", log.Err(err))
		} else {
			o.beeper = beeper
			o.player = player
		}
	}

	if wavPath != "" {
		recorder, err := NewRecorder(wavPath)
		if err != nil {
			_ = o.Close()
			return nil, fmt.Errorf("creating recorder: %w", err)
		}
		o.recorder = recorder
		logger.Info("Recording audio", log.String("file", wavPath))
	}

	return o, nil
}

// Update switches the tone for the next timer frame.
func (o *Output) Update(active bool) error {
	if o.beeper != nil {
		o.beeper.SetActive(active)
	}
	if o.recorder != nil {
		if err := o.recorder.Record(active); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the playback and finalizes the recording.
func (o *Output) Close() error {
	var errs []error
	if o.player != nil {
		o.beeper.SetActive(false)
		errs = append(errs, o.player.Close())
		o.player = nil
	}
	if o.recorder != nil {
		errs = append(errs, o.recorder.Close())
		o.recorder = nil
	}
	return errors.Join(errs...)
}
