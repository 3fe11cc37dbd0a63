//go:build !darwin
// +build !darwin

package playerdarwin

import (
	"context"
	"errors"

	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

var errUnavailable = errors.New("MIDI functionality is not available on this platform")

type dummyPlayer struct {
	logger contracts.Logger
}

// NewPlayer initializes a dummy MIDI player for non-macOS systems.
func NewPlayer(options *contracts.PlayerOptions) (contracts.Player, error) {
	options.Logger.Info("Using dummy MIDI player for non-macOS system")
	return &dummyPlayer{
		logger: options.Logger,
	}, nil
}

func (p *dummyPlayer) ListDevices() ([]contracts.DeviceInfo, error) {
	p.logger.Warn("ListDevices called on dummy MIDI player")
	return nil, errUnavailable
}

func (p *dummyPlayer) SelectDevice(deviceID int) error {
	p.logger.Warn("SelectDevice called on dummy MIDI player")
	return errUnavailable
}

func (p *dummyPlayer) Play(ctx context.Context, song *contracts.Song) error {
	p.logger.Warn("Play called on dummy MIDI player")
	return errUnavailable
}

func (p *dummyPlayer) Stop() error {
	p.logger.Warn("Stop called on dummy MIDI player")
	return nil
}
