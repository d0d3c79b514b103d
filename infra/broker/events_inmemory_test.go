package broker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"bitbucket.org/novatechnologies/spychart/domain"
)

func TestEventsInMemory_Publish(t *testing.T) {
	b := NewInMemory()

	var calls int32
	var got *domain.ChartPayload
	b.Subscribe(domain.EvTypeSnapshot, func(m *domain.Event) error {
		atomic.AddInt32(&calls, 1)
		got = m.MustGetSnapshot()
		return nil
	})
	b.Subscribe("other", func(m *domain.Event) error {
		atomic.AddInt32(&calls, 100)
		return nil
	})

	payload := domain.EmptyPayload()
	b.Publish(domain.EvTypeSnapshot, domain.NewEvent(context.Background(), payload))
	b.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Same(t, payload, got)
}

func TestEventsInMemory_HandlerFailures(t *testing.T) {
	log, hook := test.NewNullLogger()
	b := NewInMemory().WithLogger(logrus.NewEntry(log))

	b.Subscribe(domain.EvTypeSnapshot, func(*domain.Event) error {
		return errors.New("boom")
	})
	b.Subscribe(domain.EvTypeSnapshot, func(*domain.Event) error {
		panic("bad handler")
	})

	b.Publish(domain.EvTypeSnapshot, domain.NewEvent(context.TODO(), nil))
	b.Wait()

	assert.Len(t, hook.AllEntries(), 2)
	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.ErrorLevel, e.Level)
	}
}

func TestEventsInMemory_IgnoresEmptySubscription(t *testing.T) {
	b := NewInMemory()
	b.Subscribe("", func(*domain.Event) error { return nil })
	b.Subscribe(domain.EvTypeSnapshot, nil)

	assert.Empty(t, b.subscribers)
}
