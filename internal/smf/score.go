package smf

import (
	"sort"
	"strings"
)

// HighestNoteIndex is the highest pitch the target sound driver can play.
const HighestNoteIndex = 38

// Score is a decoded file. It exclusively owns its tracks.
type Score struct {
	Header
	Tracks []*Track
}

/*
Track is a single track chunk, usually a single instrument.

ProgramChangeTime is the timestamp of the earliest program change in the events
the track was created with, or 0. It is fixed at creation and survives later
replacements of Events.
*/
type Track struct {
	Title             string
	Events            []Event
	ProgramChangeTime int
}

// NewTrack creates a track and records the time of its first program change.
func NewTrack(title string, events []Event) *Track {
	t := &Track{Title: title, Events: events}
	first := -1
	for _, e := range events {
		if e.Kind == ProgramChange && (first < 0 || e.Timestamp < first) {
			first = e.Timestamp
		}
	}
	if first > 0 {
		t.ProgramChangeTime = first
	}
	return t
}

// Peek returns the textual form of at most n leading events.
func (t *Track) Peek(n int) []string {
	n = min(n, len(t.Events))
	lines := make([]string, n)
	for i := range lines {
		lines[i] = t.Events[i].String()
	}
	return lines
}

// TrackPolicy selects tracks by title.
type TrackPolicy func(title string) bool

/*
IsDrumTrack reports whether a title names a percussion track. It only looks for
"drum" in the title, case-insensitively; tracks on the percussion channel with
other names are not detected.
*/
func IsDrumTrack(title string) bool {
	return strings.Contains(strings.ToLower(title), "drum")
}

// RemoveTracks drops every track selected by policy and returns how many were dropped.
func (s *Score) RemoveTracks(policy TrackPolicy) int {
	kept := s.Tracks[:0]
	for _, t := range s.Tracks {
		if !policy(t.Title) {
			kept = append(kept, t)
		}
	}
	removed := len(s.Tracks) - len(kept)
	s.Tracks = kept
	return removed
}

// RemoveDrumTracks drops the tracks IsDrumTrack selects.
func (s *Score) RemoveDrumTracks() int {
	return s.RemoveTracks(IsDrumTrack)
}

// RemoveEmptyTracks drops tracks without events.
func (s *Score) RemoveEmptyTracks() {
	kept := s.Tracks[:0]
	for _, t := range s.Tracks {
		if len(t.Events) > 0 {
			kept = append(kept, t)
		}
	}
	s.Tracks = kept
}

// ForEachTrack replaces the events of every track with the result of fn.
func (s *Score) ForEachTrack(fn func([]Event) ([]Event, error)) error {
	for _, t := range s.Tracks {
		events, err := fn(t.Events)
		if err != nil {
			return err
		}
		t.Events = events
	}
	return nil
}

// RebaseToFirstProgramChange shifts every track so that its first program
// change happens at time 0. Earlier events end up with negative timestamps.
func (s *Score) RebaseToFirstProgramChange() {
	for _, t := range s.Tracks {
		for i := range t.Events {
			t.Events[i].Timestamp -= t.ProgramChangeTime
		}
	}
}

/*
MergeTracks replaces all tracks with a single one holding every event ordered by
timestamp. Events sharing a timestamp keep their track order. The merged title
joins the merged titles with commas.
*/
func (s *Score) MergeTracks() {
	var (
		titles []string
		events []Event
	)
	for _, t := range s.Tracks {
		titles = append(titles, t.Title)
		events = append(events, t.Events...)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
	s.Tracks = []*Track{NewTrack(strings.Join(titles, ", "), events)}
}

// TrackSummary describes the pitch range of one track.
type TrackSummary struct {
	Title       string
	Length      int
	Highest     int
	Lowest      int
	OutOfBounds int
}

// Summaries describes every track with at least one event.
func (s *Score) Summaries() []TrackSummary {
	var summaries []TrackSummary
	for _, t := range s.Tracks {
		if len(t.Events) == 0 {
			continue
		}
		sum := TrackSummary{
			Title:   t.Title,
			Length:  len(t.Events),
			Highest: t.Events[0].Note,
			Lowest:  t.Events[0].Note,
		}
		for _, e := range t.Events {
			sum.Highest = max(sum.Highest, e.Note)
			sum.Lowest = min(sum.Lowest, e.Note)
			if e.Note < 0 || e.Note > HighestNoteIndex {
				sum.OutOfBounds++
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
