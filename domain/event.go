package domain

import (
	"context"
)

type EventType = string

const (
	EvTypeSnapshot = "snapshot"
)

// MetaSymbol carries the ticker of the bars behind a snapshot.
const MetaSymbol = "symbol"

type EventHandler = func(m *Event) error

// EventsBroker describes abstract pub-sub messaging system for internal events
// among components. Each event can contain payload and meta info, so they can
// be used not for notification purposes only.
type EventsBroker interface {
	Subscribe(tp EventType, h EventHandler)
	Publish(tp EventType, data *Event)
}

type (
	meta  map[string]string
	Event struct {
		Ctx     context.Context
		payload interface{}
		meta    meta
	}
)

func NewEvent(ctx context.Context, payload interface{}) *Event {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Event{
		payload: payload,
		Ctx:     ctx,
		meta:    nil,
	}
}

// WithMeta sets a meta value and returns the event for chaining.
func (e *Event) WithMeta(key, value string) *Event {
	if e.meta == nil {
		e.meta = make(meta, 1)
	}
	e.meta[key] = value
	return e
}

// Meta returns "" for unset keys.
func (e *Event) Meta(key string) string {
	return e.meta[key]
}

func (e *Event) MustGetSnapshot() *ChartPayload {
	return e.payload.(*ChartPayload)
}
