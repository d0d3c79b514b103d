package broker

import (
	"sync"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

var _ domain.EventsBroker = new(EventsInMemory)

// EventsInMemory stores subscriptions and runs every handler of a published
// event on its own goroutine.
type EventsInMemory struct {
	log         logger.Logger
	mu          sync.RWMutex
	subscribers map[domain.EventType][]domain.EventHandler
	inflight    sync.WaitGroup
}

func NewInMemory() *EventsInMemory {
	return &EventsInMemory{
		log:         logger.DefaultLogger,
		subscribers: make(map[domain.EventType][]domain.EventHandler),
	}
}

func (ps *EventsInMemory) WithLogger(lg logger.Logger) *EventsInMemory {
	ps.log = lg
	return ps
}

func (ps *EventsInMemory) Subscribe(
	tp domain.EventType,
	h domain.EventHandler,
) {
	if tp == "" || h == nil {
		return
	}

	ps.mu.Lock()
	ps.subscribers[tp] = append(ps.subscribers[tp], h)
	ps.mu.Unlock()
}

func (ps *EventsInMemory) Publish(tp domain.EventType, ev *domain.Event) {
	ps.mu.RLock()
	handlers := ps.subscribers[tp]
	ps.mu.RUnlock()

	for _, handler := range handlers {
		currHandler := handler

		ps.inflight.Add(1)
		go func() {
			defer ps.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					ps.log.WithField("type", tp).
						Errorf("[broker.EventsInMemory] Panic while executing handler: %+v", r)
				}
			}()

			if err := currHandler(ev); err != nil {
				ps.log.WithField("type", tp).WithError(err).
					Error("[broker.EventsInMemory] Error while executing handler")
			}
		}()
	}
}

// Wait blocks until every handler started so far has returned.
func (ps *EventsInMemory) Wait() {
	ps.inflight.Wait()
}
