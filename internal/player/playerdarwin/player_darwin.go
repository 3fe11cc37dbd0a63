//go:build darwin
// +build darwin

package playerdarwin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/midi2gb/internal/player"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI output handling issues.
var (
	ErrNoMIDIDevices      = errors.New("no MIDI destinations found")
	ErrInvalidMIDIDevice  = errors.New("invalid MIDI destination")
	ErrNoDeviceSelected   = errors.New("no MIDI destination selected")
	ErrCreateOutputPort   = errors.New("error creating output port")
	ErrPlaybackInProgress = player.ErrPlaybackInProgress
)

// Player plays songs on a CoreMIDI destination.
type Player struct {
	logger      contracts.Logger
	client      coremidi.Client
	outputPort  coremidi.OutputPort
	destination *coremidi.Destination
	sequencer   player.Sequencer
	playback    player.Playback
	mu          sync.Mutex
}

// NewPlayer creates a CoreMIDI client and its output port.
func NewPlayer(options *contracts.PlayerOptions) (contracts.Player, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	port, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		options.Logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}
	options.Logger.Info("MIDI player successfully created")

	return &Player{
		logger:     options.Logger,
		client:     client,
		outputPort: port,
		sequencer: player.Sequencer{
			Logger:   options.Logger,
			BaseNote: options.BaseNote,
			TickUnit: options.TickUnit,
		},
	}, nil
}

// ListDevices retrieves the available MIDI destinations.
func (p *Player) ListDevices() ([]contracts.DeviceInfo, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		p.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(destinations))
	for i, destination := range destinations {
		entity := destination.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         destination.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects the destination notes are sent to.
func (p *Player) SelectDevice(deviceID int) error {
	if p.playback.Active() {
		return ErrPlaybackInProgress
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI destinations: %w", err)
	}
	if deviceID < 0 || deviceID >= len(destinations) {
		p.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	destination := destinations[deviceID]
	p.destination = &destination
	p.logger.Info("MIDI destination selected",
		p.logger.Field().Int("deviceID", deviceID),
		p.logger.Field().String("deviceName", destination.Name()))
	return nil
}

// Send delivers one short message to the selected destination.
func (p *Player) Send(msg []byte) error {
	p.mu.Lock()
	destination := p.destination
	p.mu.Unlock()
	if destination == nil {
		return ErrNoDeviceSelected
	}

	packet := coremidi.NewPacket(msg, 0)
	return packet.Send(&p.outputPort, destination)
}

// Play plays the song on the selected destination until it ends, ctx is done
// or Stop is called.
func (p *Player) Play(ctx context.Context, song *contracts.Song) error {
	p.mu.Lock()
	selected := p.destination != nil
	p.mu.Unlock()
	if !selected {
		return ErrNoDeviceSelected
	}

	return p.playback.Run(ctx, func(ctx context.Context) error {
		return p.sequencer.Play(ctx, p, song)
	})
}

// Stop interrupts any playback in progress and waits for it to finish.
func (p *Player) Stop() error {
	if p.playback.Stop() {
		p.logger.Info("MIDI playback stopped")
	}
	return nil
}
