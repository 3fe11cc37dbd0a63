/*
Package player plays converted songs on MIDI output devices. The platform
backends live in playerdarwin and playerwindows; this package holds the timing
they share.
*/
package player

import (
	"context"
	"time"

	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

const (
	noteOn   = 0x90
	noteOff  = 0x80
	maxKey   = 127
	velocity = 100
)

// Sender delivers a single short MIDI message to an output device.
type Sender interface {
	Send(msg []byte) error
}

// TickDuration is the length of one delay unit. The driver's wait grows with
// the square of the tempo byte.
func TickDuration(tempo byte, unit time.Duration) time.Duration {
	return time.Duration(tempo) * time.Duration(tempo) * unit
}

// Sequencer turns song notes into timed note on/off messages on channel 0.
type Sequencer struct {
	Logger   contracts.Logger
	BaseNote byte
	TickUnit time.Duration
}

// Play sends every note of song to out, holding each for its delay. It returns
// ctx's error when cancelled; the sounding note is released first.
func (s Sequencer) Play(ctx context.Context, out Sender, song *contracts.Song) error {
	tick := TickDuration(song.Tempo, s.TickUnit)
	s.Logger.Info("Playing song",
		s.Logger.Field().String("title", song.Title),
		s.Logger.Field().Int("notes", len(song.Notes)),
		s.Logger.Field().Int64("tickMicros", tick.Microseconds()))

	for _, n := range song.Notes {
		hold := time.Duration(n.Delay) * tick
		if n.Pitch == contracts.EndOfSong {
			if err := wait(ctx, hold); err != nil {
				return err
			}
			continue
		}

		key := byte(min(int(s.BaseNote)+int(n.Pitch), maxKey))
		if err := out.Send([]byte{noteOn, key, velocity}); err != nil {
			return err
		}
		waitErr := wait(ctx, hold)
		if err := out.Send([]byte{noteOff, key, 0}); err != nil {
			return err
		}
		if waitErr != nil {
			return waitErr
		}
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
