package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-http-utils/headers"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

const dateLayout = "2006-01-02"

type ChartService interface {
	Snapshot(ctx context.Context) (*domain.ChartPayload, error)
	Day(ctx context.Context, day time.Time) (*domain.ChartPayload, error)
	LatestDate(ctx context.Context) (time.Time, error)
}

type ChartHandler struct {
	ChartService ChartService
}

func NewChartHandler(chartService ChartService) *ChartHandler {
	return &ChartHandler{chartService}
}

// GetChartData serves the latest snapshot. An empty store yields empty
// series, not an error.
func (h ChartHandler) GetChartData(res http.ResponseWriter, req *http.Request) {
	payload, err := h.ChartService.Snapshot(req.Context())
	if err != nil {
		internalError(req.Context(), res, "GetChartData", err)
		return
	}
	writeJSON(req.Context(), res, http.StatusOK, payload)
}

func (h ChartHandler) GetLatestDate(res http.ResponseWriter, req *http.Request) {
	ts, err := h.ChartService.LatestDate(req.Context())
	if errors.Is(err, domain.ErrNoData) {
		writeError(req.Context(), res, http.StatusNotFound, "No data available")
		return
	}
	if err != nil {
		internalError(req.Context(), res, "GetLatestDate", err)
		return
	}
	writeJSON(req.Context(), res, http.StatusOK, map[string]string{
		"date": ts.UTC().Format(time.RFC3339),
	})
}

// GetDayData serves one calendar day given as ?date=YYYY-MM-DD, the newest
// day when the parameter is absent.
func (h ChartHandler) GetDayData(res http.ResponseWriter, req *http.Request) {
	var day time.Time
	if raw := req.URL.Query().Get("date"); raw != "" {
		var err error
		day, err = time.Parse(dateLayout, raw)
		if err != nil {
			writeError(req.Context(), res, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
	}

	payload, err := h.ChartService.Day(req.Context(), day)
	if errors.Is(err, domain.ErrNoData) {
		writeError(req.Context(), res, http.StatusNotFound, "No data available")
		return
	}
	if err != nil {
		internalError(req.Context(), res, "GetDayData", err)
		return
	}
	writeJSON(req.Context(), res, http.StatusOK, payload)
}

func internalError(ctx context.Context, res http.ResponseWriter, method string, err error) {
	logger.FromContext(ctx).
		WithField("method", "handler.ChartHandler."+method).
		WithError(err).
		Error("request failed")
	writeError(ctx, res, http.StatusInternalServerError, err.Error())
}

func writeError(ctx context.Context, res http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, res, status, map[string]string{"error": msg})
}

func writeJSON(ctx context.Context, res http.ResponseWriter, status int, body interface{}) {
	marshal, err := json.Marshal(body)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("[handler.writeJSON] can't marshal response")
		res.WriteHeader(http.StatusInternalServerError)
		return
	}
	res.Header().Set(headers.ContentType, "application/json")
	res.WriteHeader(status)
	_, _ = res.Write(marshal)
}
