/*
Package transform holds the stages that reduce a merged score timeline to a
single line of notes the sound driver can play. Stages take the current event
list and return its replacement; scalar fields are updated in place.
*/
package transform

import (
	"errors"

	"github.com/leandrodaf/midi2gb/internal/smf"
)

var (
	ErrEmptySequence   = errors.New("not enough notes to time the sequence")
	ErrPitchOutOfRange = errors.New("pitch offset out of range")
)

// FilterToNoteOnOnly keeps note-on events.
func FilterToNoteOnOnly(events []smf.Event) ([]smf.Event, error) {
	kept := make([]smf.Event, 0, len(events))
	for _, e := range events {
		if e.Kind == smf.NoteOn {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// FilterOutSimultaneousNotes drops events immediately followed by another one,
// leaving a single note wherever several start on the same tick.
func FilterOutSimultaneousNotes(events []smf.Event) ([]smf.Event, error) {
	kept := make([]smf.Event, 0, len(events))
	for _, e := range events {
		if e.DeltaTime > 0 {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

/*
RecalculateDeltaTime sets each event's delta-time to the distance to the next
event's timestamp. The last event has no successor and takes the first positive
delta-time of the sequence, which sets how long the song waits before looping.
*/
func RecalculateDeltaTime(events []smf.Event) ([]smf.Event, error) {
	if len(events) < 2 {
		return nil, ErrEmptySequence
	}
	last := len(events) - 1
	for i := range last {
		events[i].DeltaTime = events[i+1].Timestamp - events[i].Timestamp
	}
	for _, e := range events {
		if e.DeltaTime > 0 {
			events[last].DeltaTime = e.DeltaTime
			return events, nil
		}
	}
	return nil, ErrEmptySequence
}
