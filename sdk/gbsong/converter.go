/*
Package gbsong converts Standard MIDI Files into songs for an 8-bit sound
driver that plays one note at a time, and plays the result on MIDI devices.
*/
package gbsong

import (
	"fmt"

	"github.com/leandrodaf/midi2gb/internal/encode"
	"github.com/leandrodaf/midi2gb/internal/smf"
	"github.com/leandrodaf/midi2gb/internal/transform"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

// Errors a conversion can fail with. Parse errors additionally carry the byte
// offset through *smf.ParseError.
var (
	ErrMalformedVarint     = smf.ErrMalformedVarint
	ErrTruncatedChunk      = smf.ErrTruncatedChunk
	ErrUnsupportedFormat   = smf.ErrUnsupportedFormat
	ErrUnknownHeaderFormat = smf.ErrUnknownHeaderFormat
	ErrEmptySequence       = transform.ErrEmptySequence
	ErrPitchOutOfRange     = transform.ErrPitchOutOfRange
)

// NewConverter creates a converter with the specified options.
// It applies default options for everything not set.
//
// opts ...contracts.Option: A variadic list of option functions to customize the conversion.
//
// Returns:
//   - contracts.Converter: A converter ready to use.
//   - error: An error, if any occurred while applying the options.
func NewConverter(opts ...contracts.Option) (contracts.Converter, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &converter{logger: options.Logger, options: options}, nil
}

type converter struct {
	logger  contracts.Logger
	options contracts.ConverterOptions
}

/*
Convert runs the whole pipeline: parse, drop filtered and empty tracks, keep
note starts, align tracks on their first program change, merge, re-time,
quantize, normalize and shift the pitch. Any failing stage aborts the
conversion.
*/
func (c *converter) Convert(data []byte) (*contracts.Song, error) {
	score, err := smf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("reading MIDI data: %w", err)
	}
	c.logger.Info("MIDI file read",
		c.logger.Field().Int("format", int(score.Format)),
		c.logger.Field().Int("tracks", int(score.NumTracks)),
		c.logger.Field().Int("trackChunks", len(score.Tracks)),
		c.logger.Field().Int("division", int(score.Division)))

	removed := score.RemoveTracks(c.options.TrackFilter)
	c.logger.Info("Removing filtered tracks", c.logger.Field().Int("removed", removed))

	if err := score.ForEachTrack(transform.FilterToNoteOnOnly); err != nil {
		return nil, err
	}
	if !c.options.KeepSimultaneousNotes {
		if err := score.ForEachTrack(transform.FilterOutSimultaneousNotes); err != nil {
			return nil, err
		}
	}
	score.RemoveEmptyTracks()
	c.logSummaries(score)

	score.RebaseToFirstProgramChange()
	score.MergeTracks()
	track := score.Tracks[0]

	events, err := transform.RecalculateDeltaTime(track.Events)
	if err != nil {
		return nil, fmt.Errorf("timing %q: %w", track.Title, err)
	}
	events, factor := transform.Quantize(events)
	c.logger.Info("Delta-times quantized", c.logger.Field().Int("factor", factor))

	if events, err = transform.NormalizeNotes(events); err != nil {
		return nil, err
	}
	if events, err = transform.PitchShift(events, c.options.PitchOffset); err != nil {
		c.logger.Error("Invalid pitch offset", c.logger.Field().Int("offset", c.options.PitchOffset))
		return nil, err
	}
	track.Events = events

	return &contracts.Song{
		Title:  track.Title,
		Notes:  encode.Notes(events),
		Factor: factor,
		Tempo:  c.options.Tempo,
	}, nil
}

func (c *converter) logSummaries(score *smf.Score) {
	for _, s := range score.Summaries() {
		c.logger.Debug("Track",
			c.logger.Field().String("title", s.Title),
			c.logger.Field().Int("length", s.Length),
			c.logger.Field().Int("highest", s.Highest),
			c.logger.Field().Int("lowest", s.Lowest),
			c.logger.Field().Int("outOfBounds", s.OutOfBounds))
	}
}
