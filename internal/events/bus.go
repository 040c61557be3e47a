// Package events carries browser selections to their subscribers.
//
// Delivery is asynchronous: every subscriber owns a queue drained by its own
// goroutine, so handlers that touch widgets must hop back to the UI thread.
package events

import (
	"fmt"

	messagebus "github.com/vardius/message-bus"
)

// Topic names an event stream.
type Topic string

const (
	ItemSelected  Topic = "item-selected"
	ImageSelected Topic = "image-selected"
)

const defaultQueueSize = 64

// Selection is the payload of both selection topics.
type Selection struct {
	Path    string // original absolute path of the activated entry
	IsDir   bool
	IsImage bool
}

// Publisher is what the browser needs from a bus.
type Publisher interface {
	Publish(topic Topic, sel Selection)
}

// Bus is a typed wrapper over a message bus.
type Bus struct {
	bus messagebus.MessageBus
}

// NewBus creates a bus whose per-subscriber queues hold queueSize events.
func NewBus(queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Bus{bus: messagebus.New(queueSize)}
}

// Subscribe registers fn for topic.
func (b *Bus) Subscribe(topic Topic, fn func(Selection)) error {
	if fn == nil {
		return fmt.Errorf("nil handler for topic %q", topic)
	}
	if err := b.bus.Subscribe(string(topic), fn); err != nil {
		return fmt.Errorf("subscribing to %q: %w", topic, err)
	}
	return nil
}

// OnItem subscribes fn to item-selected.
func (b *Bus) OnItem(fn func(Selection)) error {
	return b.Subscribe(ItemSelected, fn)
}

// OnImage subscribes fn to image-selected.
func (b *Bus) OnImage(fn func(Selection)) error {
	return b.Subscribe(ImageSelected, fn)
}

// Publish queues sel for every subscriber of topic.
func (b *Bus) Publish(topic Topic, sel Selection) {
	b.bus.Publish(string(topic), sel)
}

// Close drops every subscriber of topic.
func (b *Bus) Close(topic Topic) {
	b.bus.Close(string(topic))
}
