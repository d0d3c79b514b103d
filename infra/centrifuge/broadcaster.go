package centrifuge

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

const SnapshotChannelPrefix = "chart_snapshot"

type broadcaster struct {
	Centrifuge   Centrifuge
	Channel      string
	eventsBroker domain.EventsBroker
}

func NewBroadcaster(publisher Centrifuge, eventsBroker domain.EventsBroker, symbol string) *broadcaster {
	return &broadcaster{
		Centrifuge:   publisher,
		Channel:      SnapshotChannel(symbol),
		eventsBroker: eventsBroker,
	}
}

func SnapshotChannel(symbol string) string {
	return SnapshotChannelPrefix + "_" + symbol
}

// SubscribeForSnapshots pushes every snapshot event to Centrifugo. Events
// tagged with a symbol go to that symbol's channel.
func (b broadcaster) SubscribeForSnapshots() {
	b.eventsBroker.Subscribe(
		domain.EvTypeSnapshot, func(e *domain.Event) error {
			channel := b.Channel
			if symbol := e.Meta(domain.MetaSymbol); symbol != "" {
				channel = SnapshotChannel(symbol)
			}
			return b.publish(e.Ctx, channel, e.MustGetSnapshot())
		},
	)
}

func (b broadcaster) BroadcastSnapshot(ctx context.Context, payload *domain.ChartPayload) error {
	return b.publish(ctx, b.Channel, payload)
}

func (b broadcaster) publish(ctx context.Context, channel string, payload *domain.ChartPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}

	logger.FromContext(ctx).
		WithField("channel", channel).
		WithField("candles", len(payload.Candlesticks)).
		Trace("[Broadcaster.BroadcastSnapshot] Push snapshot to Centrifugo.")

	return b.Centrifuge.Publish(ctx, MessageData{
		Channel: channel,
		Data:    string(data),
	})
}
