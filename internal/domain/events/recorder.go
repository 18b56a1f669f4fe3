package events

// Recorder buffers events raised by an aggregate root until the application
// layer has persisted the aggregate and dispatched them.
type Recorder struct {
	pending []Event
}

func (r *Recorder) Raise(e Event) {
	r.pending = append(r.pending, e)
}

// PendingEvents returns a copy of the buffered events in emission order.
func (r *Recorder) PendingEvents() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

func (r *Recorder) ClearEvents() {
	r.pending = nil
}
