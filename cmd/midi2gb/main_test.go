package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/midi2gb/internal/logger"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoNotes is a format 0 file holding C4 then E4, 480 ticks apart.
var twoNotes = []byte{
	'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xE0,
	'M', 'T', 'r', 'k', 0, 0, 0, 30,
	0x00, 0xFF, 0x03, 0x04, 'L', 'e', 'a', 'd', 0x00,
	0x90, 0x3C, 0x40, 0x83, 0x60,
	0x80, 0x3C, 0x00, 0x00,
	0x90, 0x40, 0x40, 0x83, 0x60,
	0x80, 0x40, 0x00, 0x00,
	0xFF, 0x2F, 0x00,
}

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs([]string{"-o", "out.asm", "-v", "song.mid", "60", "-2"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "song.mid", cfg.input)
	assert.Equal(t, byte(60), cfg.tempo)
	assert.Equal(t, -2, cfg.pitch)
	assert.Equal(t, "out.asm", cfg.asmPath)
	assert.True(t, cfg.verbose)
	assert.Equal(t, -1, cfg.device)
}

func TestParseArgsRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"missing arguments", []string{"song.mid"}, errUsage},
		{"tempo zero", []string{"song.mid", "0", "0"}, errTempo},
		{"tempo too large", []string{"song.mid", "256", "0"}, errTempo},
		{"tempo not a number", []string{"song.mid", "fast", "0"}, errTempo},
		{"pitch too low", []string{"song.mid", "60", "-7"}, errPitch},
		{"pitch too high", []string{"song.mid", "60", "3"}, errPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, io.Discard)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "song.mid")
	require.NoError(t, os.WriteFile(input, twoNotes, 0o644))

	cfg := &config{
		input:    input,
		tempo:    0x30,
		asmPath:  filepath.Join(dir, "Song_Bytes.asm"),
		textPath: filepath.Join(dir, "song.txt"),
		smfPath:  filepath.Join(dir, "song.mid.out"),
		pngPath:  filepath.Join(dir, "song.png"),
		device:   -1,
	}
	log := logger.NewZapLogger()
	log.SetDestination(contracts.FileLog, filepath.Join(dir, "run.log"))
	require.NoError(t, run(cfg, log))

	asm, err := os.ReadFile(cfg.asmPath)
	require.NoError(t, err)
	assert.Equal(t, "\tdb &00,&01,&04,&01,255,255\nSpeed:\n\tdb &30\n", string(asm))

	text, err := os.ReadFile(cfg.textPath)
	require.NoError(t, err)
	assert.Equal(t, "0,1\n4,1\n", string(text))

	exported, err := os.ReadFile(cfg.smfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(exported, []byte("MThd")))

	picture, err := os.ReadFile(cfg.pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(picture, []byte("\x89PNG")))
}

func TestRunPitchOutOfRange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "song.mid")
	require.NoError(t, os.WriteFile(input, twoNotes, 0o644))

	log := logger.NewZapLogger()
	log.SetDestination(contracts.FileLog, filepath.Join(dir, "run.log"))
	err := run(&config{input: input, tempo: 1, pitch: -6, asmPath: filepath.Join(dir, "out.asm"), device: -1}, log)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.asm"))
}
