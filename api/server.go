package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/status-im/market-rates/interfaces"
)

// IRatesSource serves the most recent payloads of the updater
type IRatesSource interface {
	GetLatest(ctx context.Context) (*interfaces.LatestPayload, error)
	GetLatestFiat(ctx context.Context) (*interfaces.FiatPayload, error)
	IsInitialized() bool
	ForceUpdate()
	Status() (time.Time, error)
}

type Server struct {
	port   string
	rates  IRatesSource
	server *http.Server
}

func New(port string, rates IRatesSource) *Server {
	return &Server{
		port:  port,
		rates: rates,
	}
}

// Router returns the routes of the server
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/rates/latest", s.handleLatestRates).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/fiat/latest", s.handleLatestFiat).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/rates/refresh", s.handleRefresh).Methods(http.MethodPost)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())
	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
