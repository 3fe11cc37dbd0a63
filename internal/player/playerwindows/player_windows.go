//go:build windows
// +build windows

package playerwindows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midi2gb/internal/player"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIOUT windows.Handle

// CALLBACK_NULL opens a device without a status callback.
const CALLBACK_NULL = 0x00000000

// Struct representing MIDI output device capabilities
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

var (
	ErrNoMIDIDevices      = errors.New("no MIDI output devices found")
	ErrNoDeviceSelected   = errors.New("no MIDI output device selected")
	ErrPlaybackInProgress = player.ErrPlaybackInProgress
)

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutReset      = winmm.NewProc("midiOutReset")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// Player plays songs on a winmm MIDI output device
type Player struct {
	logger    contracts.Logger
	handle    HMIDIOUT
	sequencer player.Sequencer
	playback  player.Playback
	mu        sync.Mutex
}

// NewPlayer creates a MIDI player for Windows
func NewPlayer(options *contracts.PlayerOptions) (contracts.Player, error) {
	options.Logger.Info("MIDI player created for Windows")

	return &Player{
		logger: options.Logger,
		sequencer: player.Sequencer{
			Logger:   options.Logger,
			BaseNote: options.BaseNote,
			TickUnit: options.TickUnit,
		},
	}, nil
}

// ListDevices lists the available MIDI output devices
func (p *Player) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		p.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			p.logger.Warn("Failed to get information for MIDI device", p.logger.Field().Uint64("deviceID", uint64(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI output device, closing the previous one
func (p *Player) SelectDevice(deviceID int) error {
	if p.playback.Active() {
		return ErrPlaybackInProgress
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != 0 {
		if err := p.closeDevice(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&p.handle)),
		uintptr(deviceID),
		0,
		0,
		CALLBACK_NULL,
	)
	if r1 != 0 {
		p.logger.Error("Failed to open MIDI device", p.logger.Field().Int("deviceID", deviceID), p.logger.Field().Error("error", err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	p.logger.Info("MIDI device connected", p.logger.Field().Int("deviceID", deviceID))
	return nil
}

// Send packs a short message into a DWORD and writes it to the device. The
// lock is held for the whole call so closing the device waits for it.
func (p *Player) Send(msg []byte) error {
	var dw uintptr
	for i, b := range msg {
		dw |= uintptr(b) << (8 * i)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return ErrNoDeviceSelected
	}
	r1, _, err := procMidiOutShortMsg.Call(uintptr(p.handle), dw)
	if r1 != 0 {
		return fmt.Errorf("midiOutShortMsg failed: %v", err)
	}
	return nil
}

// Play plays the song on the open device until it ends, ctx is done or Stop is called
func (p *Player) Play(ctx context.Context, song *contracts.Song) error {
	p.mu.Lock()
	selected := p.handle != 0
	p.mu.Unlock()
	if !selected {
		return ErrNoDeviceSelected
	}

	return p.playback.Run(ctx, func(ctx context.Context) error {
		return p.sequencer.Play(ctx, p, song)
	})
}

// Stop interrupts playback, waits for it to finish and closes the device
func (p *Player) Stop() error {
	if p.playback.Stop() {
		p.logger.Info("MIDI playback interrupted")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		p.logger.Warn("No MIDI device is connected")
		return nil
	}
	if err := p.closeDevice(); err != nil {
		return fmt.Errorf("failed to stop MIDI playback: %w", err)
	}
	p.logger.Info("MIDI playback stopped and device closed")
	return nil
}

// closeDevice silences and releases the device; p.mu must be held
func (p *Player) closeDevice() error {
	r1, _, err := procMidiOutReset.Call(uintptr(p.handle))
	if r1 != 0 {
		p.logger.Error("Failed to reset MIDI device", p.logger.Field().Error("error", err))
		return err
	}

	r1, _, err = procMidiOutClose.Call(uintptr(p.handle))
	if r1 != 0 {
		p.logger.Error("Failed to close MIDI device", p.logger.Field().Error("error", err))
		return err
	}

	p.handle = 0
	return nil
}
