package main

import (
	"context"
	"fmt"
	"os"

	"github.com/leandrodaf/midi2gb/internal/encode"
	"github.com/leandrodaf/midi2gb/internal/logger"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"github.com/leandrodaf/midi2gb/sdk/gbsong"
)

func main() {
	log := logger.NewZapLogger()

	if len(os.Args) < 2 {
		fmt.Println("Usage: simple_use <MIDI file>")
		return
	}

	converter, err := gbsong.NewConverter(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithTempo(0x30),
		contracts.WithPitchOffset(-1),
	)
	if err != nil {
		log.Error("Failed to initialize converter", log.Field().Error("error", err))
		return
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Error("Failed to read MIDI file", log.Field().Error("error", err))
		return
	}

	song, err := converter.Convert(data)
	if err != nil {
		log.Error("Failed to convert MIDI file", log.Field().Error("error", err))
		return
	}

	if err := encode.WriteSong(os.Stdout, song); err != nil {
		log.Error("Failed to write song", log.Field().Error("error", err))
		return
	}

	player, err := gbsong.NewPlayer(contracts.WithPlayerLogger(log))
	if err != nil {
		log.Error("Failed to initialize MIDI player", log.Field().Error("error", err))
		return
	}
	defer player.Stop()

	devices, err := player.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = player.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}
	if err := player.Play(context.Background(), song); err != nil {
		log.Error("Playback failed", log.Field().Error("error", err))
	}
}
