package chartdata

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
)

const (
	httpMethodChartData = resty.MethodGet
	uriPathChartData    = "/api/chart-data"
)

const defaultTimeout = 30 * time.Second

// Client fetches chart snapshots from the chart server.
type Client interface {
	ChartData(ctx context.Context) (*domain.ChartPayload, error)
}

type client struct {
	cli                *resty.Client
	transportChartData ChartDataTransport
}

// ChartData requests one snapshot. Non-200 responses come back as
// *ResponseError.
func (s *client) ChartData(ctx context.Context) (*domain.ChartPayload, error) {
	req := s.cli.R()
	if err := s.transportChartData.EncodeRequest(ctx, req); err != nil {
		return nil, err
	}
	res, err := req.Send()
	if err != nil {
		return nil, errors.Wrap(err, "can't request chart data")
	}
	return s.transportChartData.DecodeResponse(ctx, res)
}

type Config struct {
	ServerURL string
	Timeout   *time.Duration
}

func New(config Config, errorProcessor errorProcessor) (Client, error) {
	parsedServerURL, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse server url")
	}
	if parsedServerURL.Scheme == "" || parsedServerURL.Host == "" {
		return nil, errors.Errorf("server url %q must be absolute", config.ServerURL)
	}
	transportChartData := NewChartDataTransport(
		errorProcessor,
		parsedServerURL.Scheme+"://"+parsedServerURL.Host+parsedServerURL.Path+uriPathChartData,
		httpMethodChartData,
	)

	cli := resty.New()
	timeout := defaultTimeout
	if config.Timeout != nil {
		timeout = *config.Timeout
	}
	cli.SetTimeout(timeout)

	return &client{
		cli:                cli,
		transportChartData: transportChartData,
	}, nil
}
