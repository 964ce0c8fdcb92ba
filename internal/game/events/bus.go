package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// registration is either a Subscriber or a function bound to one event type
type registration struct {
	id        string
	sub       Subscriber
	eventType string
	fn        EventHandler
}

func (r registration) wants(eventType string) bool {
	if r.sub != nil {
		return r.sub.InterestedIn(eventType)
	}
	return r.eventType == eventType
}

// EventBus delivers search events synchronously, in registration order.
// Handlers run outside the bus lock and may subscribe or unsubscribe.
type EventBus struct {
	mu      sync.RWMutex
	regs    []registration
	nextSeq int
	logger  zerolog.Logger
}

func NewEventBus() *EventBus {
	return &EventBus{
		logger: log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a subscriber. Registering an ID twice replaces the
// earlier subscriber but keeps its position.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	reg := registration{id: subscriber.ID(), sub: subscriber}
	if i := eb.indexLocked(reg.id); i >= 0 {
		eb.regs[i] = reg
	} else {
		eb.regs = append(eb.regs, reg)
	}
	eb.logger.Debug().Str("subscriber_id", reg.id).Msg("Subscriber added to event bus")
}

// SubscribeFunc registers handler for a single event type and returns an ID
// that Unsubscribe accepts
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextSeq++
	id := eventType + "#" + strconv.Itoa(eb.nextSeq)
	eb.regs = append(eb.regs, registration{id: id, eventType: eventType, fn: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// Unsubscribe removes a subscriber or function handler by ID
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	i := eb.indexLocked(id)
	if i < 0 {
		return
	}
	eb.regs = append(eb.regs[:i:i], eb.regs[i+1:]...)
	eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed from event bus")
}

// Len is the number of registered subscribers and function handlers
func (eb *EventBus) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.regs)
}

// Publish delivers event to every interested registration. A panicking
// handler is logged and does not stop delivery to the rest.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	targets := make([]registration, 0, len(eb.regs))
	for _, reg := range eb.regs {
		if reg.wants(eventType) {
			targets = append(targets, reg)
		}
	}
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("search_id", event.SearchID()).
		Int("targets", len(targets)).
		Msg("Publishing event")

	for _, reg := range targets {
		eb.deliver(reg, event)
	}
}

func (eb *EventBus) deliver(reg registration, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", reg.id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Handler panicked while handling event")
		}
	}()
	if reg.sub != nil {
		reg.sub.HandleEvent(event)
		return
	}
	reg.fn(event)
}

func (eb *EventBus) indexLocked(id string) int {
	for i, reg := range eb.regs {
		if reg.id == id {
			return i
		}
	}
	return -1
}
