package encode

import (
	"io"

	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// TicksPerDelay is the number of file ticks one driver delay unit spans.
	TicksPerDelay = 24
	// ticksPerQuarter makes four delay units a quarter note.
	ticksPerQuarter = 4 * TicksPerDelay

	maxKey   = 127
	velocity = 100
)

/*
WriteSMF writes the song as a single-track Standard MIDI File on channel 0.
Pitch 0 sounds as baseNote; notes whose pitch was clamped become rests.
*/
func WriteSMF(w io.Writer, song *contracts.Song, baseNote uint8) error {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(song.Title))

	var rest uint32
	for _, n := range song.Notes {
		length := uint32(n.Delay) * TicksPerDelay
		if n.Pitch == contracts.EndOfSong {
			rest += length
			continue
		}
		key := uint8(min(int(baseNote)+int(n.Pitch), maxKey))
		track.Add(rest, midi.NoteOn(0, key, velocity))
		track.Add(length, midi.NoteOff(0, key))
		rest = 0
	}
	track.Close(rest)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(track); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}
