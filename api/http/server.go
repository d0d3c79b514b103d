package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bitbucket.org/novatechnologies/spychart/api/http/handler"
	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

type Server struct {
	srv http.Server
}

func NewServer(chartService handler.ChartService, conf infra.HttpConfig) *Server {
	return &Server{
		srv: http.Server{
			Addr:              fmt.Sprintf(":%d", conf.Port),
			Handler:           NewRouter(chartService),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter registers the chart endpoints.
func NewRouter(chartService handler.ChartService) *mux.Router {
	chartHandler := handler.NewChartHandler(chartService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chart-data", chartHandler.GetChartData).Methods(http.MethodGet)
	api.HandleFunc("/latest-date", chartHandler.GetLatestDate).Methods(http.MethodGet)
	api.HandleFunc("/data", chartHandler.GetDayData).Methods(http.MethodGet)

	return router
}

// Start serves until Stop and returns nil after a clean shutdown, or the
// listen error otherwise. The server's base context is ctx, so handlers log
// through its logger.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(listener net.Listener) context.Context {
		return ctx
	}
	log := logger.FromContext(ctx)
	log.WithField("addr", s.srv.Addr).Info("[*] Http server is started")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("[api.http.Server] listen failed")
		return fmt.Errorf("can't listen on %s: %w", s.srv.Addr, err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Error("[api.http.Server] shutdown")
		return err
	}
	return nil
}
