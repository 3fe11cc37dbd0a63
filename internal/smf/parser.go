/*
Package smf decodes Standard MIDI Files into a Score: a header plus one
timeline of events per track chunk.

A file is a sequence of chunks, each made of a 4 character type and a 32-bit
big-endian length followed by that many bytes of data:

	<chunk type><length><data>

The first chunk must be the header chunk ("MThd"); track chunks ("MTrk")
follow. Chunks of any other type are skipped.
*/
package smf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	headerChunk = [4]byte{'M', 'T', 'h', 'd'}
	trackChunk  = [4]byte{'M', 'T', 'r', 'k'}
)

const (
	chunkPrefixLength = 8
	headerLength      = 6

	metaStatus    = 0xFF
	metaTrackName = 0x03
)

// Header formats.
const (
	FormatSingleTrack     = 0
	FormatMultiTrack      = 1
	FormatMultiSequence   = 2
	lastKnownHeaderFormat = FormatMultiSequence
)

/*
Header holds the three 16-bit words of the header chunk. Division is carried
for reference only; the conversion pipeline works in raw ticks.
*/
type Header struct {
	Format    uint16
	NumTracks uint16
	Division  uint16
}

type chunk struct {
	Type   [4]byte
	Length uint32
}

// readChunk reads the chunk prefix at off and returns it with its data.
func readChunk(data []byte, off int) (chunk, []byte, error) {
	var c chunk
	if off+chunkPrefixLength > len(data) {
		return c, nil, &ParseError{Offset: off, Err: ErrTruncatedChunk}
	}
	if err := binary.Read(bytes.NewReader(data[off:off+chunkPrefixLength]), binary.BigEndian, &c); err != nil {
		return c, nil, &ParseError{Offset: off, Err: fmt.Errorf("%w: %v", ErrTruncatedChunk, err)}
	}
	start := off + chunkPrefixLength
	if uint64(start)+uint64(c.Length) > uint64(len(data)) {
		return c, nil, &ParseError{
			Offset: off,
			Err:    fmt.Errorf("%w: declares %d bytes, %d remain", ErrTruncatedChunk, c.Length, len(data)-start),
		}
	}
	return c, data[start : start+int(c.Length)], nil
}

/*
Parse decodes a complete file. Formats 0 and 1 are supported; format 2 files
(several independent sequences) fail with ErrUnsupportedFormat before any track
is read.
*/
func Parse(data []byte) (*Score, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], headerChunk[:]) {
		return nil, &ParseError{Offset: 0, Err: ErrUnknownHeaderFormat}
	}
	c, body, err := readChunk(data, 0)
	if err != nil {
		return nil, err
	}
	if c.Length < headerLength {
		return nil, &ParseError{
			Offset: 0,
			Err:    fmt.Errorf("%w: header length %d", ErrTruncatedChunk, c.Length),
		}
	}

	var h Header
	if err := binary.Read(bytes.NewReader(body[:headerLength]), binary.BigEndian, &h); err != nil {
		return nil, &ParseError{Offset: chunkPrefixLength, Err: err}
	}
	switch {
	case h.Format == FormatMultiSequence:
		return nil, &ParseError{Offset: chunkPrefixLength, Err: fmt.Errorf("%w: %d", ErrUnsupportedFormat, h.Format)}
	case h.Format > lastKnownHeaderFormat:
		return nil, &ParseError{Offset: chunkPrefixLength, Err: fmt.Errorf("%w: %d", ErrUnknownHeaderFormat, h.Format)}
	}

	score := &Score{Header: h}
	for off := chunkPrefixLength + int(c.Length); off < len(data); {
		c, body, err := readChunk(data, off)
		if err != nil {
			return nil, err
		}
		base := off + chunkPrefixLength
		off = base + len(body)
		if c.Type != trackChunk {
			continue
		}
		track, err := parseTrack(body)
		if err != nil {
			return nil, rebase(err, base)
		}
		score.Tracks = append(score.Tracks, track)
	}
	return score, nil
}

/*
parseTrack decodes the data of one track chunk. A leading meta event is taken
as the track's name record:

	<delta-time><0xFF><type><length><text><delta-time of the first event>

The title is only kept when the record is a track name. The delta-time that
follows the record is dropped, so the first decoded event is stamped at 0.
*/
func parseTrack(data []byte) (*Track, error) {
	var title string

	_, n, err := ReadVarint(data, 0)
	if err != nil && len(data) > 0 {
		return nil, err
	}
	cursor := n
	if cursor < len(data) && data[cursor] == metaStatus {
		if cursor+2 > len(data) {
			return nil, &ParseError{Offset: cursor, Err: ErrTruncatedChunk}
		}
		metaType := data[cursor+1]
		cursor += 2

		length, n, err := ReadVarint(data, cursor)
		if err != nil {
			return nil, err
		}
		cursor += n
		if length < 0 || length > len(data)-cursor {
			return nil, &ParseError{Offset: cursor, Err: ErrTruncatedChunk}
		}
		if metaType == metaTrackName {
			title = decodeText(data[cursor : cursor+length])
		}
		cursor += length

		if cursor < len(data) {
			_, n, err = ReadVarint(data, cursor)
			if err != nil {
				return nil, err
			}
			cursor += n
		}
	}

	var events []Event
	timestamp := 0
	for cursor < len(data) {
		e, n, err := DecodeEvent(data, cursor)
		if err != nil {
			return nil, err
		}
		if e.DeltaTime > math.MaxInt-timestamp {
			return nil, &ParseError{Offset: cursor, Err: fmt.Errorf("%w: track time overflows", ErrMalformedVarint)}
		}
		e.Timestamp = timestamp
		timestamp += e.DeltaTime
		events = append(events, e)
		cursor += n
	}
	return NewTrack(title, events), nil
}

// decodeText maps each byte of a meta text to one rune (ISO 8859-1).
func decodeText(raw []byte) string {
	text, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(text)
}
