package centrifuge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra/broker"
)

type publisherStub struct {
	mu       sync.Mutex
	messages []MessageData
	err      error
}

func (p *publisherStub) Publish(_ context.Context, m MessageData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, m)
	return p.err
}

func TestSnapshotChannel(t *testing.T) {
	assert.Equal(t, "chart_snapshot_SPY", SnapshotChannel("SPY"))
}

func TestBroadcaster_SubscribeForSnapshots(t *testing.T) {
	pub := &publisherStub{}
	events := broker.NewInMemory()
	NewBroadcaster(pub, events, "SPY").SubscribeForSnapshots()

	payload := &domain.ChartPayload{
		Candlesticks: []domain.ChartPoint{{Time: 1, Open: 1, High: 2, Low: 0.5, Close: 1.5}},
		Volume:       []domain.VolumeBar{},
		Oscillator:   []domain.OscillatorPoint{},
	}
	events.Publish(domain.EvTypeSnapshot, domain.NewEvent(context.Background(), payload))
	events.Wait()

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "chart_snapshot_SPY", pub.messages[0].Channel)

	var decoded domain.ChartPayload
	require.NoError(t, json.Unmarshal([]byte(pub.messages[0].Data), &decoded))
	assert.Equal(t, payload.Candlesticks, decoded.Candlesticks)
}

func TestBroadcaster_SymbolFromMeta(t *testing.T) {
	pub := &publisherStub{}
	events := broker.NewInMemory()
	NewBroadcaster(pub, events, "SPY").SubscribeForSnapshots()

	events.Publish(domain.EvTypeSnapshot,
		domain.NewEvent(context.Background(), domain.EmptyPayload()).WithMeta(domain.MetaSymbol, "QQQ"))
	events.Wait()

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "chart_snapshot_QQQ", pub.messages[0].Channel)
}

func TestBroadcaster_PublishError(t *testing.T) {
	pub := &publisherStub{err: errors.New("unauthorized")}
	b := NewBroadcaster(pub, broker.NewInMemory(), "SPY")

	err := b.BroadcastSnapshot(context.Background(), domain.EmptyPayload())
	assert.EqualError(t, err, "unauthorized")
}
