package events

import "sync"

// Recorded is one published selection.
type Recorded struct {
	Topic Topic
	Selection
}

// Recorder is a synchronous Publisher that keeps everything it receives.
// The CLI uses it to print classifications; tests use it to assert on them.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Publish records sel.
func (r *Recorder) Publish(topic Topic, sel Selection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{Topic: topic, Selection: sel})
}

// Events returns a copy of the recorded selections in publish order.
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}

// Topics returns the recorded topics in publish order.
func (r *Recorder) Topics() []Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Topic, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Fanout publishes to every non-nil publisher in order.
type Fanout []Publisher

// Publish forwards sel.
func (f Fanout) Publish(topic Topic, sel Selection) {
	for _, p := range f {
		if p != nil {
			p.Publish(topic, sel)
		}
	}
}
