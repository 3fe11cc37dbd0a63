package gbsong_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/midi2gb/internal/encode"
	"github.com/leandrodaf/midi2gb/internal/logger"
	"github.com/leandrodaf/midi2gb/internal/smf"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
	"github.com/leandrodaf/midi2gb/sdk/gbsong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func track(name string, events ...byte) []byte {
	body := []byte{0x00, 0xFF, 0x03, byte(len(name))}
	body = append(body, name...)
	body = append(body, 0x00)
	body = append(body, events...)
	body = append(body, 0xFF, 0x2F, 0x00)

	var buffer bytes.Buffer
	buffer.WriteString("MTrk")
	binary.Write(&buffer, binary.BigEndian, uint32(len(body)))
	buffer.Write(body)
	return buffer.Bytes()
}

func midiFile(format uint16, tracks ...[]byte) []byte {
	var buffer bytes.Buffer
	buffer.WriteString("MThd")
	binary.Write(&buffer, binary.BigEndian, uint32(6))
	binary.Write(&buffer, binary.BigEndian, [3]uint16{format, uint16(len(tracks)), 480})
	for _, t := range tracks {
		buffer.Write(t)
	}
	return buffer.Bytes()
}

var (
	lead = track("Lead",
		0xC0, 0x00, 0x00, // program change
		0x90, 0x3C, 0x40, 0x83, 0x60, // C4, 480 ticks
		0x80, 0x3C, 0x00, 0x00,
		0x90, 0x40, 0x40, 0x83, 0x60, // E4, 480 ticks
		0x80, 0x40, 0x00, 0x00,
	)
	drums = track("Drums",
		0x90, 0x24, 0x40, 0x10,
	)
	bass = track("Bass",
		0x90, 0x30, 0x40, 0x81, 0x70, // C3, 240 ticks
		0x80, 0x30, 0x00, 0x00,
		0x90, 0x2B, 0x40, 0x00, // G2, struck together with the next note
		0x90, 0x2D, 0x40, 0x81, 0x70, // A2, 240 ticks
		0x80, 0x2D, 0x00, 0x00,
	)
)

func quietLogger(t *testing.T) contracts.Logger {
	log := logger.NewZapLogger()
	log.SetDestination(contracts.FileLog, filepath.Join(t.TempDir(), "convert.log"))
	return log
}

func convert(t *testing.T, data []byte, opts ...contracts.Option) (*contracts.Song, error) {
	converter, err := gbsong.NewConverter(append([]contracts.Option{contracts.WithLogger(quietLogger(t))}, opts...)...)
	require.NoError(t, err)
	return converter.Convert(data)
}

func TestConvert(t *testing.T) {
	song, err := convert(t, midiFile(1, lead, drums, bass), contracts.WithTempo(0x30))
	require.NoError(t, err)

	assert.Equal(t, "Lead, Bass", song.Title)
	assert.Equal(t, 240, song.Factor)
	assert.Equal(t, byte(0x30), song.Tempo)
	assert.Equal(t, []contracts.Note{
		{Pitch: 15, Delay: 0},
		{Pitch: 3, Delay: 1},
		{Pitch: 0, Delay: 1},
		{Pitch: 19, Delay: 1},
	}, song.Notes)

	var buffer bytes.Buffer
	require.NoError(t, encode.WriteNotes(&buffer, song.Notes))
	assert.Equal(t, "\tdb &0F,&00,&03,&01,&00,&01,&13,&01,255,255", buffer.String())
}

func TestConvertPitchShift(t *testing.T) {
	song, err := convert(t, midiFile(1, lead, bass), contracts.WithPitchOffset(1))
	require.NoError(t, err)

	var pitches []byte
	for _, n := range song.Notes {
		pitches = append(pitches, n.Pitch)
	}
	assert.Equal(t, []byte{21, 9, 6, 25}, pitches)
}

func TestConvertKeepingDrumsAndChords(t *testing.T) {
	song, err := convert(t, midiFile(1, lead, drums, bass),
		contracts.WithTrackFilter(func(string) bool { return false }),
		contracts.WithSimultaneousNotes(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "Lead, Drums, Bass", song.Title)
	assert.Len(t, song.Notes, 6)
}

func TestConvertDefaults(t *testing.T) {
	song, err := convert(t, midiFile(0, lead))
	require.NoError(t, err)
	assert.Equal(t, gbsong.DefaultTempo, song.Tempo)
	assert.Equal(t, 480, song.Factor)
	assert.Equal(t, []contracts.Note{{Pitch: 0, Delay: 1}, {Pitch: 4, Delay: 1}}, song.Notes)
}

func TestConvertErrors(t *testing.T) {
	_, err := convert(t, midiFile(2, lead))
	assert.ErrorIs(t, err, gbsong.ErrUnsupportedFormat)

	_, err = convert(t, midiFile(1, drums))
	assert.ErrorIs(t, err, gbsong.ErrEmptySequence)

	_, err = convert(t, midiFile(1, lead), contracts.WithPitchOffset(5))
	assert.ErrorIs(t, err, gbsong.ErrPitchOutOfRange)

	truncated := midiFile(1, lead)
	_, err = convert(t, truncated[:len(truncated)-3])
	assert.ErrorIs(t, err, gbsong.ErrTruncatedChunk)

	var pe *smf.ParseError
	assert.True(t, errors.As(err, &pe))
}
