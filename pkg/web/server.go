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

// Package web serves the status page over plain TCP, one connection at a time.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/mfreeman451/datalogger/pkg/models"
)

const (
	// DefaultRequestBuffer is the most request bytes read per connection.
	DefaultRequestBuffer = 1024
	// DefaultRequestTimeout bounds the wait for request bytes and the response write.
	DefaultRequestTimeout = 5 * time.Second

	// NoRecord fills the record slots of the status page before anything has been logged.
	NoRecord = "n/a"

	acceptRetryDelay = 100 * time.Millisecond
)

// StateReader exposes the latest serving snapshot.
type StateReader interface {
	Snapshot() models.Snapshot
}

// RecordRenderer renders the readings of a record for the status page.
type RecordRenderer interface {
	Summary(rec *models.LogRecord) string
}

// RequestCounter observes the status of each response.
type RequestCounter interface {
	Request(status int)
}

// Config holds server tunables.
type Config struct {
	RequestBuffer  int
	RequestTimeout time.Duration
}

// Server answers each connection with exactly one response and then closes it.
type Server struct {
	assets   *AssetStore
	state    StateReader
	renderer RecordRenderer
	counter  RequestCounter
	bufSize  int
	timeout  time.Duration
}

// NewServer returns a Server. counter may be nil.
func NewServer(cfg Config, assets *AssetStore, state StateReader, renderer RecordRenderer, counter RequestCounter) *Server {
	if cfg.RequestBuffer <= 0 {
		cfg.RequestBuffer = DefaultRequestBuffer
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return &Server{
		assets:   assets,
		state:    state,
		renderer: renderer,
		counter:  counter,
		bufSize:  cfg.RequestBuffer,
		timeout:  cfg.RequestTimeout,
	}
}

// Serve accepts connections on ln until ctx is done. Each connection is
// handled to completion before the next Accept.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Printf("Listening on %s", ln.Addr())

	stop := context.AfterFunc(ctx, func() {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("Error closing listener: %v", err)
		}
	})
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(acceptRetryDelay)
				continue
			}

			return fmt.Errorf("accept: %w", err)
		}

		s.HandleConn(conn)
	}
}

// Service runs a Server on an already bound listener under lifecycle control.
type Service struct {
	srv *Server
	ln  net.Listener
}

// Service binds s to ln.
func (s *Server) Service(ln net.Listener) *Service {
	return &Service{srv: s, ln: ln}
}

func (svc *Service) Start(ctx context.Context) error {
	return svc.srv.Serve(ctx, svc.ln)
}

// Stop closes the listener. A connection in progress is finished first.
func (svc *Service) Stop(context.Context) error {
	if err := svc.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}

// HandleConn reads one request from conn, writes one response and closes conn.
func (s *Server) HandleConn(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing connection from %s: %v", conn.RemoteAddr(), err)
		}
	}()

	if err := conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		log.Printf("Error setting read deadline: %v", err)
	}

	var (
		status  int
		payload []byte
	)

	req, err := s.readRequest(conn)
	if err != nil {
		log.Printf("Error reading request from %s: %v", conn.RemoteAddr(), err)

		status, payload = http.StatusInternalServerError, internalErrorResponse
	} else {
		status, payload = s.Resolve(req)
	}

	if s.counter != nil {
		s.counter.Request(status)
	}

	if err := conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		log.Printf("Error setting write deadline: %v", err)
	}

	if _, err := conn.Write(payload); err != nil {
		log.Printf("Error writing response to %s: %v", conn.RemoteAddr(), err)
	}
}

// readRequest performs a single bounded read; a request split across
// several packets is seen only up to the first one.
func (s *Server) readRequest(conn net.Conn) ([]byte, error) {
	buf := make([]byte, s.bufSize)

	n, err := conn.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}

	if err == nil {
		return nil, errReadRequest
	}

	return nil, fmt.Errorf("%w: %w", errReadRequest, err)
}

// Resolve maps raw request bytes to a status and the exact bytes to send.
func (s *Server) Resolve(req []byte) (status int, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error building response: %v", fmt.Errorf("%w: %v", errPanic, r))

			status, payload = http.StatusInternalServerError, internalErrorResponse
		}
	}()

	body, err := s.resolve(req)

	switch {
	case err == nil:
		return http.StatusOK, body
	case errors.Is(err, errNotFound), errors.Is(err, errBadRequest):
		return http.StatusNotFound, notFoundResponse
	default:
		log.Printf("Error building response: %v", err)

		return http.StatusInternalServerError, internalErrorResponse
	}
}

func (s *Server) resolve(req []byte) ([]byte, error) {
	path, err := parseRequest(req)
	if err != nil {
		return nil, err
	}

	payload, err := s.assets.Lookup(path)
	if err != nil {
		return nil, err
	}

	if path != rootResource {
		return payload, nil
	}

	page, err := interpolate(string(payload), s.statusFields()...)
	if err != nil {
		return nil, err
	}

	return []byte(page), nil
}

// statusFields returns, in order, the process start time, the last record
// and the end of the last interval.
func (s *Server) statusFields() []string {
	snap := s.state.Snapshot()

	record, end := NoRecord, NoRecord
	if snap.LastRecord != nil {
		record = s.renderer.Summary(snap.LastRecord)
		end = models.FormatTime(snap.LastRecord.End)
	}

	return []string{models.FormatTime(snap.InitTime), record, end}
}
