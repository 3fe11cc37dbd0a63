package transform

import (
	"fmt"

	"github.com/leandrodaf/midi2gb/internal/smf"
)

const (
	HalfOctave = 6
	Octave     = 12

	// MaxPitchOffset is the largest shift, in half octaves, PitchShift accepts.
	MaxPitchOffset = 4
)

// NormalizeNotes lowers every note so the lowest one becomes 0.
func NormalizeNotes(events []smf.Event) ([]smf.Event, error) {
	if len(events) == 0 {
		return nil, ErrEmptySequence
	}
	lowest := events[0].Note
	for _, e := range events {
		lowest = min(lowest, e.Note)
	}
	for i := range events {
		events[i].Note -= lowest
	}
	return events, nil
}

/*
PushNotes moves every note by amount, then folds notes that left the playable
range back into it by steps of wrap, which must be positive.
*/
func PushNotes(events []smf.Event, amount, wrap int) []smf.Event {
	for i := range events {
		n := events[i].Note + amount
		for n < 0 {
			n += wrap
		}
		for n > smf.HighestNoteIndex {
			n -= wrap
		}
		events[i].Note = n
	}
	return events
}

// PitchShift moves the song by offset half octaves, wrapping by whole octaves.
func PitchShift(events []smf.Event, offset int) ([]smf.Event, error) {
	if offset < -MaxPitchOffset || offset > MaxPitchOffset {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrPitchOutOfRange, offset, -MaxPitchOffset, MaxPitchOffset)
	}
	step := HalfOctave
	if offset < 0 {
		step = -HalfOctave
	}
	for range abs(offset) {
		events = PushNotes(events, step, Octave)
	}
	return events, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
