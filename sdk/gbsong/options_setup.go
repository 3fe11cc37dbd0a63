package gbsong

import (
	"time"

	"github.com/leandrodaf/midi2gb/internal/logger"
	"github.com/leandrodaf/midi2gb/internal/smf"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

const (
	// DefaultTempo is the tempo byte used when none is given.
	DefaultTempo byte = 0x40
	// DefaultBaseNote plays pitch 0 as C3.
	DefaultBaseNote byte = 48
	// DefaultTickUnit makes tempo 0x40 about 80ms per delay unit.
	DefaultTickUnit = 20 * time.Microsecond
)

// applyDefaultOptions sets default values for ConverterOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ConverterOptions.
//
// Returns:
//   - contracts.ConverterOptions: A structure containing the finalized options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ConverterOptions, error) {
	options := &contracts.ConverterOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.Tempo == 0 {
		options.Tempo = DefaultTempo
	}
	if options.TrackFilter == nil {
		options.TrackFilter = smf.IsDrumTrack
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}

// applyDefaultPlayerOptions sets default values for PlayerOptions if not explicitly provided.
func applyDefaultPlayerOptions(opts ...contracts.PlayerOption) (contracts.PlayerOptions, error) {
	options := &contracts.PlayerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.ClientName == "" {
		options.ClientName = "GO MIDI2GB Player"
	}
	if options.BaseNote == 0 {
		options.BaseNote = DefaultBaseNote
	}
	if options.TickUnit == 0 {
		options.TickUnit = DefaultTickUnit
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
