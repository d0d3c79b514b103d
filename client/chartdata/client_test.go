package chartdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/novatechnologies/spychart/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cli, err := New(Config{ServerURL: srv.URL}, NewErrorProcessor(map[string]string{
		"502": "chart server unavailable",
	}))
	require.NoError(t, err)
	return cli
}

func TestClient_ChartData(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, uriPathChartData, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get(headers.Accept))

		w.Header().Set(headers.ContentType, "application/json")
		_, _ = w.Write([]byte(`{
			"candlesticks": [{"time": 1700000000, "open": 1, "high": 2, "low": 0.5, "close": 1.5}],
			"volume": [{"time": 1700000000, "value": 1200, "color": "rgba(38, 166, 154, 0.5)"}],
			"oscillator": [],
			"markers": [{"time": 1700000000, "position": "aboveBar", "color": "#FF5252", "shape": "arrowDown", "text": "LEU"}]
		}`))
	})

	payload, err := cli.ChartData(context.Background())
	require.NoError(t, err)
	require.Len(t, payload.Candlesticks, 1)
	assert.Equal(t, domain.ChartPoint{Time: 1700000000, Open: 1, High: 2, Low: 0.5, Close: 1.5}, payload.Candlesticks[0])
	assert.Equal(t, 1200.0, payload.Volume[0].Value)
	assert.Empty(t, payload.Oscillator)
	require.Len(t, payload.Markers, 1)
	assert.Equal(t, domain.MarkerAboveBar, payload.Markers[0].Position)
}

func TestClient_ChartDataErrors(t *testing.T) {
	t.Run("server error body", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "db down"}`))
		})

		_, err := cli.ChartData(context.Background())
		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Equal(t, "db down", respErr.Message)
	})

	t.Run("mapped status", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := cli.ChartData(context.Background())
		assert.EqualError(t, err, "chart server responded 502: chart server unavailable")
	})

	t.Run("malformed body", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candlesticks": [`))
		})

		_, err := cli.ChartData(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := cli.ChartData(ctx)
		assert.Error(t, err)
	})
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{ServerURL: "localhost"}, NewErrorProcessor(nil))
	assert.Error(t, err)

	_, err = New(Config{ServerURL: "http://a b"}, NewErrorProcessor(nil))
	assert.Error(t, err)
}
