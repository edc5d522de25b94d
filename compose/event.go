package compose

import (
	"io"

	"github.com/signadot/yamlir/ir"
)

// EventType identifies a structural parse event.
type EventType int

const (
	StreamStart EventType = iota
	DocumentStart
	DocumentEnd
	Scalar
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
	Alias
	StreamEnd
)

func (t EventType) String() string {
	switch t {
	case StreamStart:
		return "StreamStart"
	case DocumentStart:
		return "DocumentStart"
	case DocumentEnd:
		return "DocumentEnd"
	case Scalar:
		return "Scalar"
	case SequenceStart:
		return "SequenceStart"
	case SequenceEnd:
		return "SequenceEnd"
	case MappingStart:
		return "MappingStart"
	case MappingEnd:
		return "MappingEnd"
	case Alias:
		return "Alias"
	case StreamEnd:
		return "StreamEnd"
	}
	return "<unknown event>"
}

// Event is one structural event. Anchor and Tag are the text as written
// (without & or expansion); for Alias events Anchor is the referenced
// name. Text and Style apply to scalars, CollectionStyle to starts.
type Event struct {
	Type            EventType
	Anchor          string
	Tag             string
	Text            string
	Style           ir.ScalarStyle
	CollectionStyle ir.CollectionStyle
	Mark            ir.Mark
}

// EventReader produces events, returning io.EOF after the last one.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// SliceReader replays a fixed list of events.
type SliceReader struct {
	events []Event
	i      int
}

func NewSliceReader(events []Event) *SliceReader {
	return &SliceReader{events: events}
}

func (r *SliceReader) ReadEvent() (*Event, error) {
	if r.i >= len(r.events) {
		return nil, io.EOF
	}
	e := &r.events[r.i]
	r.i++
	return e, nil
}
