/*
Package encode writes converted songs out: as the byte-pair records the sound
driver reads, as plain text, as a Standard MIDI File for auditioning and as a
piano-roll picture.
*/
package encode

import (
	"bufio"
	"fmt"
	"io"

	"github.com/leandrodaf/midi2gb/internal/smf"
	"github.com/leandrodaf/midi2gb/sdk/contracts"
)

// clamp returns v as a byte, or the sentinel when it does not fit in one.
func clamp(v int) byte {
	if v < 0 || v > 0xFF {
		return contracts.EndOfSong
	}
	return byte(v)
}

// Notes turns the events of the final track into driver notes.
func Notes(events []smf.Event) []contracts.Note {
	notes := make([]contracts.Note, len(events))
	for i, e := range events {
		notes[i] = contracts.Note{Pitch: clamp(e.Note), Delay: clamp(e.DeltaTime)}
	}
	return notes
}

/*
WriteNotes writes the notes as a single data directive, each note a pair of
hexadecimal byte literals, terminated by the end-of-song pair:

	db &PP,&DD,&PP,&DD,...,255,255
*/
func WriteNotes(w io.Writer, notes []contracts.Note) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\tdb ")
	for _, n := range notes {
		fmt.Fprintf(bw, "&%02X,&%02X,", n.Pitch, n.Delay)
	}
	fmt.Fprintf(bw, "%d,%d", contracts.EndOfSong, contracts.EndOfSong)
	return bw.Flush()
}

// WriteSong writes the notes followed by the tempo record the driver reads
// its tick delay from.
func WriteSong(w io.Writer, song *contracts.Song) error {
	if err := WriteNotes(w, song.Notes); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nSpeed:\n\tdb &%02X\n", song.Tempo)
	return err
}

// WritePlaintext writes one "pitch,delay" line per note.
func WritePlaintext(w io.Writer, song *contracts.Song) error {
	bw := bufio.NewWriter(w)
	for _, n := range song.Notes {
		fmt.Fprintf(bw, "%d,%d\n", n.Pitch, n.Delay)
	}
	return bw.Flush()
}
