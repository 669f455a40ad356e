package ecs

// Event is one thing that happened during a frame. Frame is stamped by the
// queue on Push.
type Event struct {
	Type  string
	Frame uint64
	Data  any
}

// EventQueue collects the events of the current frame. The scheduler
// flushes it after the late systems run, which also advances the frame
// counter.
type EventQueue struct {
	items []Event
	frame uint64
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	evt.Frame = q.frame
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Of returns the queued events of one type, oldest first.
func (q *EventQueue) Of(kind string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == kind {
			out = append(out, evt)
		}
	}
	return out
}

// Frame is the number of flushes so far.
func (q *EventQueue) Frame() uint64 {
	if q == nil {
		return 0
	}
	return q.frame
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
	q.frame++
}
