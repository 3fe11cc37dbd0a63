package smf

import "fmt"

// Kind is the high nibble of an event's status byte.
type Kind byte

// Channel voice kinds understood by the decoder. Any other nibble decodes to
// an unknown event that is carried along but never used.
const (
	NoteOff       Kind = 0x80
	NoteOn        Kind = 0x90
	ControlChange Kind = 0xB0
	ProgramChange Kind = 0xC0
)

const highOrderMask = 0xF0

// NoNote is the note value of events that do not carry a pitch.
const NoNote = -1

func (k Kind) String() string {
	switch k {
	case NoteOff:
		return "Note Off"
	case NoteOn:
		return "Note On"
	case ControlChange:
		return "Control Change"
	case ProgramChange:
		return "Program Change"
	}
	return fmt.Sprintf("Unknown (%x)", byte(k))
}

// Known reports whether the decoder understands events of this kind.
func (k Kind) Known() bool {
	switch k {
	case NoteOff, NoteOn, ControlChange, ProgramChange:
		return true
	}
	return false
}

// Event is a single decoded track event.
//
// DeltaTime is the delta-time stored after the event body, i.e. the distance
// to the following event. Timestamp is the sum of the delta-times of every
// earlier event in the same track.
type Event struct {
	Kind      Kind
	Note      int
	DeltaTime int
	Timestamp int
	Raw       []byte
}

func (e Event) String() string {
	return fmt.Sprintf("TimeStamp:%d\t%s\tNote:%d\tDeltaTime:%d", e.Timestamp, e.Kind, e.Note, e.DeltaTime)
}

/*
DecodeEvent decodes the event whose status byte is data[start]. The fixed-size
body is consumed first, then the trailing delta-time. It returns the event and
the total number of bytes consumed.

Note events occupy three bytes and program changes two. Control changes and
unknown statuses consume no body at all: the delta-time scan starts on the
status byte itself. This matches the layout the converter has always used and
unknown statuses never cause a failure.
*/
func DecodeEvent(data []byte, start int) (Event, int, error) {
	if start >= len(data) {
		return Event{}, 0, &ParseError{Offset: start, Err: ErrTruncatedChunk}
	}
	e := Event{Kind: Kind(data[start] & highOrderMask), Note: NoNote}

	cursor := start
	switch e.Kind {
	case NoteOff, NoteOn:
		if start+3 > len(data) {
			return Event{}, 0, &ParseError{Offset: start, Err: ErrTruncatedChunk}
		}
		e.Note = int(data[start+1])
		cursor += 3
	case ProgramChange:
		if start+2 > len(data) {
			return Event{}, 0, &ParseError{Offset: start, Err: ErrTruncatedChunk}
		}
		cursor += 2
	}

	delta, n, err := ReadVarint(data, cursor)
	if err != nil {
		return Event{}, 0, err
	}
	cursor += n

	e.DeltaTime = delta
	e.Raw = data[start:cursor]
	return e, cursor - start, nil
}
