package transform_test

import (
	"testing"

	"github.com/leandrodaf/midi2gb/internal/smf"
	. "github.com/leandrodaf/midi2gb/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deltas(events []smf.Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.DeltaTime
	}
	return out
}

func notes(events []smf.Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.Note
	}
	return out
}

func withDeltas(ds ...int) []smf.Event {
	events := make([]smf.Event, len(ds))
	for i, d := range ds {
		events[i] = smf.Event{Kind: smf.NoteOn, DeltaTime: d}
	}
	return events
}

func withNotes(ns ...int) []smf.Event {
	events := make([]smf.Event, len(ns))
	for i, n := range ns {
		events[i] = smf.Event{Kind: smf.NoteOn, Note: n, DeltaTime: 1}
	}
	return events
}

func TestFilterToNoteOnOnly(t *testing.T) {
	events := []smf.Event{
		{Kind: smf.ProgramChange, Note: smf.NoNote},
		{Kind: smf.NoteOn, Note: 60},
		{Kind: smf.NoteOff, Note: 60},
		{Kind: smf.Kind(0xF0), Note: smf.NoNote},
		{Kind: smf.NoteOn, Note: 62},
	}
	kept, err := FilterToNoteOnOnly(events)
	require.NoError(t, err)
	assert.Equal(t, []int{60, 62}, notes(kept))
}

func TestFilterOutSimultaneousNotes(t *testing.T) {
	kept, err := FilterOutSimultaneousNotes(withDeltas(0, 0, 10, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 5}, deltas(kept))
}

func TestRecalculateDeltaTime(t *testing.T) {
	events := []smf.Event{
		{Timestamp: 0}, {Timestamp: 0}, {Timestamp: 100}, {Timestamp: 250},
	}
	out, err := RecalculateDeltaTime(events)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 100, 150, 100}, deltas(out))
	for i := 0; i < len(out)-1; i++ {
		assert.Equal(t, out[i+1].Timestamp-out[i].Timestamp, out[i].DeltaTime)
	}
}

func TestRecalculateDeltaTimeNegativeTimestamps(t *testing.T) {
	out, err := RecalculateDeltaTime([]smf.Event{{Timestamp: -40}, {Timestamp: 0}, {Timestamp: 20}})
	require.NoError(t, err)
	assert.Equal(t, []int{40, 20, 40}, deltas(out))
}

func TestRecalculateDeltaTimeEmpty(t *testing.T) {
	_, err := RecalculateDeltaTime(nil)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = RecalculateDeltaTime([]smf.Event{{Timestamp: 0, DeltaTime: 7}})
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = RecalculateDeltaTime([]smf.Event{{Timestamp: 5}, {Timestamp: 5}})
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestDividingFactor(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
		factor int
	}{
		{"single value", []int{480, 480}, 480},
		{"common divisor preferred larger", []int{240, 240, 240, 120, 80}, 40},
		{"no candidate divisor", []int{7, 7, 3}, 1},
		{"first most common wins ties", []int{30, 20, 30, 20}, 10},
		{"tie order reversed", []int{20, 30, 20, 30}, 20},
		{"zeros ignored", []int{0, 0, 96, 0}, 96},
		{"nothing positive", []int{0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := DividingFactor(withDeltas(tt.deltas...))
			assert.Equal(t, tt.factor, factor)
			assert.GreaterOrEqual(t, factor, 1)
		})
	}
}

func TestDivideDeltaTimeRoundsHalfToEven(t *testing.T) {
	out := DivideDeltaTime(withDeltas(5, 15, 25, 0, 17), 10)
	assert.Equal(t, []int{0, 2, 2, 0, 2}, deltas(out))
}

func TestQuantize(t *testing.T) {
	out, factor := Quantize(withDeltas(240, 240, 240, 120, 80))
	assert.Equal(t, 40, factor)
	assert.Equal(t, []int{6, 6, 6, 3, 2}, deltas(out))
}

func TestTwoNoteSequence(t *testing.T) {
	events := []smf.Event{
		{Kind: smf.NoteOn, Note: 60, Timestamp: 0, DeltaTime: 480},
		{Kind: smf.NoteOn, Note: 64, Timestamp: 480, DeltaTime: 480},
	}
	events, err := RecalculateDeltaTime(events)
	require.NoError(t, err)

	events, factor := Quantize(events)
	assert.Equal(t, 480, factor)
	assert.Equal(t, []int{1, 1}, deltas(events))

	events, err = NormalizeNotes(events)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4}, notes(events))
}

func TestNormalizeNotes(t *testing.T) {
	out, err := NormalizeNotes(withNotes(50, 45, 70))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 25}, notes(out))

	_, err = NormalizeNotes(nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestPitchShift(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		in     []int
		want   []int
	}{
		{"no-op", 0, []int{0, 36, 50}, []int{0, 36, 50}},
		{"wraps at the top", 1, []int{36}, []int{30}},
		{"wraps at the bottom", -1, []int{2}, []int{8}},
		{"two half octaves", 2, []int{0, 30}, []int{12, 30}},
		{"four down", -4, []int{38}, []int{14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PitchShift(withNotes(tt.in...), tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, notes(out))
		})
	}
}

func TestPitchShiftKeepsNotesPlayable(t *testing.T) {
	var all []int
	for n := 0; n <= smf.HighestNoteIndex; n++ {
		all = append(all, n)
	}
	for offset := -MaxPitchOffset; offset <= MaxPitchOffset; offset++ {
		out, err := PitchShift(withNotes(all...), offset)
		require.NoError(t, err)
		for _, e := range out {
			assert.GreaterOrEqual(t, e.Note, 0)
			assert.LessOrEqual(t, e.Note, smf.HighestNoteIndex)
		}
	}
}

func TestPitchShiftOutOfRange(t *testing.T) {
	events := withNotes(10)
	_, err := PitchShift(events, 5)
	assert.ErrorIs(t, err, ErrPitchOutOfRange)
	_, err = PitchShift(events, -5)
	assert.ErrorIs(t, err, ErrPitchOutOfRange)
	assert.Equal(t, 10, events[0].Note)
}

func TestPushNotesWrapsByGivenStep(t *testing.T) {
	out := PushNotes(withNotes(30, 0), 12, 36)
	assert.Equal(t, []int{6, 12}, notes(out))
}
