package chartdata

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-http-utils/headers"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
)

// ChartDataTransport transport interface
type ChartDataTransport interface {
	EncodeRequest(ctx context.Context, r *resty.Request) (err error)
	DecodeResponse(ctx context.Context, r *resty.Response) (payload *domain.ChartPayload, err error)
}

type chartDataTransport struct {
	errorProcessor errorProcessor
	pathTemplate   string
	method         string
}

func (t *chartDataTransport) EncodeRequest(ctx context.Context, r *resty.Request) (err error) {
	r.SetContext(ctx)
	r.Method = t.method
	r.URL = t.pathTemplate
	r.SetHeader(headers.Accept, "application/json")

	return
}

func (t *chartDataTransport) DecodeResponse(_ context.Context, r *resty.Response) (*domain.ChartPayload, error) {
	if r.StatusCode() != http.StatusOK {
		return nil, t.errorProcessor.Decode(r)
	}

	var payload domain.ChartPayload
	if err := json.Unmarshal(r.Body(), &payload); err != nil {
		return nil, errors.Wrap(err, "can't decode chart data")
	}

	return &payload, nil
}

// NewChartDataTransport the transport creator for http requests
func NewChartDataTransport(
	errorProcessor errorProcessor,
	pathTemplate string,
	method string,
) ChartDataTransport {
	return &chartDataTransport{
		errorProcessor: errorProcessor,
		pathTemplate:   pathTemplate,
		method:         method,
	}
}
