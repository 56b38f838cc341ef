package stream

import "io"

// EventReader provides events from a source.  ReadEvent returns io.EOF
// after StreamEnd.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events.
type EventSink interface {
	WriteEvent(*Event) error
}

// EmptyEventReader provides an empty event stream.
type EmptyEventReader struct{}

// ReadEvent returns io.EOF immediately.
func (EmptyEventReader) ReadEvent() (*Event, error) {
	return nil, io.EOF
}

// Recorder is an EventSink that keeps the events written to it.
type Recorder struct {
	Events []*Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WriteEvent(e *Event) error {
	ev := *e
	r.Events = append(r.Events, &ev)
	return nil
}

// Reset discards the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Reader returns an EventReader replaying the recorded events.
func (r *Recorder) Reader() *SliceReader {
	return NewSliceReader(r.Events)
}

// SliceReader replays a fixed list of events.
type SliceReader struct {
	events []*Event
	i      int
}

func NewSliceReader(events []*Event) *SliceReader {
	return &SliceReader{events: events}
}

func (r *SliceReader) ReadEvent() (*Event, error) {
	if r.i >= len(r.events) {
		return nil, io.EOF
	}
	e := r.events[r.i]
	r.i++
	return e, nil
}

// Copy reads events from r until io.EOF and writes them to w.
func Copy(w EventSink, r EventReader) error {
	for {
		e, err := r.ReadEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := w.WriteEvent(e); err != nil {
			return err
		}
	}
}
