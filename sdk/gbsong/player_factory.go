package gbsong

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midi2gb/internal/player/playerdarwin"
	"github.com/leandrodaf/midi2gb/internal/player/playerwindows"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI output backend.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// playerInitializers maps OS names to corresponding MIDI player initializers.
var playerInitializers = map[string]func(*contracts.PlayerOptions) (contracts.Player, error){
	"darwin":  playerdarwin.NewPlayer,  // macOS (Darwin) CoreMIDI player.
	"windows": playerwindows.NewPlayer, // Windows winmm player.
}

// NewPlayer creates a player for the current operating system.
//
// opts ...contracts.PlayerOption: A variadic list of option functions to customize the player.
//
// Returns:
//   - contracts.Player: A player for the platform's MIDI output devices.
//   - error: ErrUnsupportedOS on platforms without a backend, or an initialization error.
func NewPlayer(opts ...contracts.PlayerOption) (contracts.Player, error) {
	options, err := applyDefaultPlayerOptions(opts...)
	if err != nil {
		return nil, err
	}
	if initializer, exists := playerInitializers[runtime.GOOS]; exists {
		return initializer(&options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
