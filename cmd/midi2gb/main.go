// Command midi2gb converts a MIDI file into the note table of a Game Boy song.
//
// Usage:
//
//	midi2gb [flags] <MIDI file> <note delay 1-255> <pitch -6..2>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/leandrodaf/midi2gb/internal/encode"
	"github.com/leandrodaf/midi2gb/internal/logger"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"github.com/leandrodaf/midi2gb/sdk/gbsong"
)

const (
	minPitch = -6
	maxPitch = 2
)

var (
	errUsage = errors.New("usage")
	errTempo = errors.New("note delay must be a number between 1 and 255")
	errPitch = fmt.Errorf("pitch must be a number between %d and %d", minPitch, maxPitch)
)

type config struct {
	input     string
	tempo     byte
	pitch     int
	asmPath   string
	textPath  string
	smfPath   string
	pngPath   string
	logPath   string
	device    int
	verbose   bool
	keepDrums bool
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	var cfg config
	fs := flag.NewFlagSet("midi2gb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.asmPath, "o", "Song_Bytes.asm", "assembly file receiving the song bytes")
	fs.StringVar(&cfg.textPath, "text", "", "also write the song as pitch,delay lines")
	fs.StringVar(&cfg.smfPath, "smf", "", "also write the song as a MIDI file")
	fs.StringVar(&cfg.pngPath, "png", "", "also draw the song as a piano roll")
	fs.StringVar(&cfg.logPath, "log", "", "write logs to this file instead of stderr")
	fs.IntVar(&cfg.device, "play", -1, "play the song on this MIDI output device")
	fs.BoolVar(&cfg.verbose, "v", false, "log per-track details")
	fs.BoolVar(&cfg.keepDrums, "drums", false, "keep tracks named like drum tracks")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: midi2gb [flags] <MIDI file> <note delay [1:255]> <pitch [%d:%d]>\n", minPitch, maxPitch)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return nil, errUsage
	}

	cfg.input = fs.Arg(0)
	tempo, err := strconv.ParseUint(fs.Arg(1), 10, 8)
	if err != nil || tempo < 1 {
		return nil, errTempo
	}
	cfg.tempo = byte(tempo)

	cfg.pitch, err = strconv.Atoi(fs.Arg(2))
	if err != nil || cfg.pitch < minPitch || cfg.pitch > maxPitch {
		return nil, errPitch
	}
	return &cfg, nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	log := logger.NewZapLogger()
	if cfg.logPath != "" {
		log.SetDestination(contracts.FileLog, cfg.logPath)
	}
	if err := run(cfg, log); err != nil {
		log.Fatal("Conversion failed", log.Field().Error("error", err))
	}
}

func run(cfg *config, log contracts.Logger) error {
	level := contracts.InfoLevel
	if cfg.verbose {
		level = contracts.DebugLevel
	}
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithTempo(cfg.tempo),
		contracts.WithPitchOffset(cfg.pitch),
	}
	if cfg.keepDrums {
		opts = append(opts, contracts.WithTrackFilter(func(string) bool { return false }))
	}
	converter, err := gbsong.NewConverter(opts...)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return err
	}
	log.Info("Converting song",
		log.Field().String("file", cfg.input),
		log.Field().Uint8("delay", cfg.tempo),
		log.Field().Int("pitch", cfg.pitch))

	song, err := converter.Convert(data)
	if err != nil {
		return err
	}

	outputs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{cfg.asmPath, func(w io.Writer) error { return encode.WriteSong(w, song) }},
		{cfg.textPath, func(w io.Writer) error { return encode.WritePlaintext(w, song) }},
		{cfg.smfPath, func(w io.Writer) error { return encode.WriteSMF(w, song, gbsong.DefaultBaseNote) }},
		{cfg.pngPath, func(w io.Writer) error { return encode.WritePianoRoll(w, song) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			return err
		}
		log.Info("Song written", log.Field().String("file", out.path))
	}

	if cfg.device >= 0 {
		return play(song, cfg.device, log)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func play(song *contracts.Song, device int, log contracts.Logger) error {
	player, err := gbsong.NewPlayer(contracts.WithPlayerLogger(log))
	if err != nil {
		return err
	}
	defer player.Stop()

	if err := player.SelectDevice(device); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = player.Play(ctx, song)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
