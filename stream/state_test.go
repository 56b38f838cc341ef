package stream

import "testing"

func TestStateContextAndPath(t *testing.T) {
	s := NewState()
	steps := []struct {
		ev   *Event
		ctx  Context
		path string
	}{
		{&Event{Type: StreamStart}, TopLevel, "$"},
		{&Event{Type: DocumentStart}, TopLevel, "$"},
		{&Event{Type: MappingStart}, MappingKey, "$"},
		{&Event{Type: Scalar, Value: "a"}, MappingValue, "$.a"},
		{&Event{Type: SequenceStart}, InSequence, "$.a"},
		{&Event{Type: Scalar, Value: "1"}, InSequence, "$.a[0]"},
		{&Event{Type: Scalar, Value: "2"}, InSequence, "$.a[1]"},
		{&Event{Type: SequenceEnd}, MappingKey, "$.a"},
		{&Event{Type: MappingEnd}, TopLevel, "$"},
		{&Event{Type: DocumentEnd}, TopLevel, "$"},
		{&Event{Type: StreamEnd}, TopLevel, "$"},
	}
	for i, st := range steps {
		if err := s.ProcessEvent(st.ev); err != nil {
			t.Fatalf("step %d %s: %v", i, st.ev.Type, err)
		}
		if got := s.Context(); got != st.ctx {
			t.Errorf("step %d: context %s want %s", i, got, st.ctx)
		}
		if got := s.CurrentPath(); got != st.path {
			t.Errorf("step %d: path %q want %q", i, got, st.path)
		}
	}
	if s.Documents() != 1 || !s.Ended() {
		t.Errorf("documents %d ended %v", s.Documents(), s.Ended())
	}
}

func TestStateRejects(t *testing.T) {
	tests := []struct {
		name   string
		events []EventType
	}{
		{"node outside document", []EventType{StreamStart, Scalar}},
		{"two roots", []EventType{DocumentStart, Scalar, Scalar}},
		{"key without value", []EventType{DocumentStart, MappingStart, Scalar, MappingEnd}},
		{"mismatched end", []EventType{DocumentStart, MappingStart, SequenceEnd}},
		{"empty document", []EventType{DocumentStart, DocumentEnd}},
		{"end inside collection", []EventType{DocumentStart, SequenceStart, DocumentEnd}},
		{"after stream end", []EventType{StreamStart, StreamEnd, DocumentStart}},
		{"stream end in document", []EventType{DocumentStart, StreamEnd}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState()
			var err error
			for _, et := range tc.events {
				if err = s.ProcessEvent(&Event{Type: et}); err != nil {
					break
				}
			}
			if err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
