/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api serves logger state, record history, a live record stream and
// metrics over HTTP for tooling.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"github.com/mfreeman451/datalogger/pkg/db"
	httpx "github.com/mfreeman451/datalogger/pkg/http"
	"github.com/mfreeman451/datalogger/pkg/models"
)

const (
	defaultRecordLimit = 50
	readHeaderTimeout  = 5 * time.Second
)

// StateReader exposes the latest serving snapshot.
type StateReader interface {
	Snapshot() models.Snapshot
}

// Config holds the API listener settings.
type Config struct {
	ListenAddr string
	// MaxConns caps concurrent connections, stream clients included. Zero
	// means unlimited.
	MaxConns int
	// MaxRecords caps the limit accepted by /api/records.
	MaxRecords int
}

// APIServer is the tooling HTTP surface.
type APIServer struct {
	cfg     Config
	state   StateReader
	history db.Service
	hub     *Hub
	router  *mux.Router
	srv     *http.Server
}

// NewAPIServer wires the routes. gatherer backs /metrics.
func NewAPIServer(cfg Config, state StateReader, history db.Service, hub *Hub, gatherer prometheus.Gatherer) *APIServer {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = db.DefaultHistory
	}

	s := &APIServer{
		cfg:     cfg,
		state:   state,
		history: history,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes(gatherer)

	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

func (s *APIServer) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.Use(httpx.CommonMiddleware, httpx.LogMiddleware)

	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/records", s.getRecords).Methods(http.MethodGet, http.MethodOptions)
	s.router.Handle("/api/stream", s.hub).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Handler returns the routed handler.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Stop.
func (s *APIServer) Start(context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", errListen, s.cfg.ListenAddr, err)
	}

	return s.Serve(ln)
}

// Serve serves on ln until Stop.
func (s *APIServer) Serve(ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	log.Printf("API listening on %s", ln.Addr())

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop disconnects stream clients and shuts the server down.
func (s *APIServer) Stop(ctx context.Context) error {
	s.hub.Close()

	return s.srv.Shutdown(ctx)
}

func (s *APIServer) getStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()

	count, err := s.history.Count(r.Context())
	if err != nil {
		log.Printf("Error counting records: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, StatusResponse{
		InitTime:   snap.InitTime,
		LastRecord: snap.LastRecord,
		Records:    count,
	})
}

func (s *APIServer) getRecords(w http.ResponseWriter, r *http.Request) {
	limit, err := s.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("Error fetching records: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	if records == nil {
		records = []models.LogRecord{}
	}

	writeJSON(w, RecordsResponse{Records: records})
}

func (s *APIServer) parseLimit(raw string) (int, error) {
	if raw == "" {
		return min(defaultRecordLimit, s.cfg.MaxRecords), nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidLimit, raw)
	}

	return min(limit, s.cfg.MaxRecords), nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
