package sndisplay

import "fmt"

// FindEvent scans the source until the event with the given ID. It
// returns the number of records read; found is false once the whole
// stream has been scanned without a match.
func FindEvent(source EventSource, eventID int) (EventRecord, int, bool, error) {
	scanned := 0
	for source.HasNext() {
		event, err := source.Next()
		if err != nil {
			return EventRecord{}, scanned, false, fmt.Errorf("error reading record %d: %w", scanned, err)
		}
		scanned++
		if int(event.EventID) != eventID {
			continue
		}
		return event, scanned, true, nil
	}
	return EventRecord{}, scanned, false, nil
}

// SliceSource serves events from memory.
type SliceSource struct {
	Events   []EventRecord
	position int
}

func NewSliceSource(events []EventRecord) *SliceSource {
	return &SliceSource{Events: events}
}

func (s *SliceSource) HasNext() bool {
	return s.position < len(s.Events)
}

func (s *SliceSource) Next() (EventRecord, error) {
	if !s.HasNext() {
		return EventRecord{}, fmt.Errorf("no more events")
	}
	event := s.Events[s.position]
	s.position++
	return event, nil
}
