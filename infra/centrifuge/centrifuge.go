package centrifuge

import (
	"context"

	"github.com/centrifugal/gocent/v3"
	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

type MessageData struct {
	Channel string `json:"channel"`
	Data    string `json:"data"`
}

type Centrifuge interface {
	Publish(ctx context.Context, message MessageData) error
}

type centrifuge struct {
	Client *gocent.Client
}

// New returns a publisher talking to the Centrifugo HTTP API.
func New(cfg infra.CentrifugeConfig) *centrifuge {
	client := gocent.New(gocent.Config{
		Addr: "http://" + cfg.Host + "/api",
		Key:  cfg.Token,
	})

	return &centrifuge{
		Client: client,
	}
}

func (c centrifuge) Publish(ctx context.Context, message MessageData) error {
	log := logger.FromContext(ctx).WithField("channel", message.Channel)
	result, err := c.Client.Publish(ctx, message.Channel, []byte(message.Data))
	if err != nil {
		return errors.Wrapf(err, "publish into %s", message.Channel)
	}
	log.Debugf(
		"[centrifuge.Publish] stream position {offset: %d, epoch: %s}",
		result.Offset, result.Epoch,
	)
	return nil
}
