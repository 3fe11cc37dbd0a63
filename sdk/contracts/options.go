package contracts

import "time"

// ConverterOptions defines the configuration options for a conversion.
type ConverterOptions struct {
	Logger                Logger                  // Logger for progress and diagnostics.
	LogLevel              LogLevel                // Level of logging to use.
	PitchOffset           int                     // Shift applied to the song, in half octaves.
	Tempo                 byte                    // Driver delay between ticks, 1-255.
	TrackFilter           func(title string) bool // Tracks it selects are dropped before merging.
	KeepSimultaneousNotes bool                    // Keep every note of a chord instead of one.
}

// Option is a function that modifies ConverterOptions.
type Option func(*ConverterOptions)

// WithLogger sets the logger for the converter.
func WithLogger(l Logger) Option {
	return func(opts *ConverterOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the converter.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ConverterOptions) {
		opts.LogLevel = level
	}
}

// WithPitchOffset shifts the converted song by offset half octaves.
func WithPitchOffset(offset int) Option {
	return func(opts *ConverterOptions) {
		opts.PitchOffset = offset
	}
}

// WithTempo sets the tempo byte recorded in the song.
func WithTempo(tempo byte) Option {
	return func(opts *ConverterOptions) {
		opts.Tempo = tempo
	}
}

// WithTrackFilter replaces the policy deciding which tracks are dropped.
func WithTrackFilter(filter func(title string) bool) Option {
	return func(opts *ConverterOptions) {
		opts.TrackFilter = filter
	}
}

// WithSimultaneousNotes keeps notes that start together with the next one.
func WithSimultaneousNotes(keep bool) Option {
	return func(opts *ConverterOptions) {
		opts.KeepSimultaneousNotes = keep
	}
}

// PlayerOptions defines the configuration options for a player.
type PlayerOptions struct {
	Logger     Logger        // Logger for device events and errors.
	LogLevel   LogLevel      // Level of logging to use.
	ClientName string        // Name the player registers with the MIDI system.
	BaseNote   byte          // MIDI key played for pitch 0.
	TickUnit   time.Duration // Tick length per squared tempo unit.
}

// PlayerOption is a function that modifies PlayerOptions.
type PlayerOption func(*PlayerOptions)

// WithPlayerLogger sets the logger for the player.
func WithPlayerLogger(l Logger) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.Logger = l
	}
}

// WithPlayerLogLevel sets the logging level for the player.
func WithPlayerLogLevel(level LogLevel) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.LogLevel = level
	}
}

// WithClientName sets the name the player registers with the MIDI system.
func WithClientName(name string) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.ClientName = name
	}
}

// WithBaseNote sets the MIDI key played for pitch 0.
func WithBaseNote(key byte) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.BaseNote = key
	}
}

// WithTickUnit sets the tick length per squared tempo unit.
func WithTickUnit(unit time.Duration) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.TickUnit = unit
	}
}
