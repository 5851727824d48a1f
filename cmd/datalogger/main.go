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

// cmd/datalogger/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mfreeman451/datalogger/pkg/alerts"
	"github.com/mfreeman451/datalogger/pkg/api"
	"github.com/mfreeman451/datalogger/pkg/clock"
	"github.com/mfreeman451/datalogger/pkg/config"
	"github.com/mfreeman451/datalogger/pkg/db"
	"github.com/mfreeman451/datalogger/pkg/decode"
	"github.com/mfreeman451/datalogger/pkg/ingest"
	"github.com/mfreeman451/datalogger/pkg/intervallog"
	"github.com/mfreeman451/datalogger/pkg/lifecycle"
	"github.com/mfreeman451/datalogger/pkg/metrics"
	"github.com/mfreeman451/datalogger/pkg/monitoring"
	"github.com/mfreeman451/datalogger/pkg/serial"
	"github.com/mfreeman451/datalogger/pkg/status"
	"github.com/mfreeman451/datalogger/pkg/web"
)

func main() {
	log.Printf("Starting datalogger...")

	configPath := flag.String("config", "/etc/datalogger/datalogger.json", "Path to config file")
	flag.Parse()

	var cfg config.DataloggerConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		lifecycle.Fatal(lifecycle.LogIndicator{}, "failed to load config: %w", err)
		return
	}

	alerter, err := newAlerter(cfg.Webhooks)
	if err != nil {
		lifecycle.Fatal(lifecycle.LogIndicator{}, "failed to configure webhooks: %w", err)
		return
	}

	host, err := os.Hostname()
	if err != nil {
		host = "datalogger"
	}

	var indicator lifecycle.Indicator = lifecycle.LogIndicator{}
	if cfg.FaultLED != "" {
		indicator = lifecycle.LEDIndicator{Path: cfg.FaultLED}
	}

	if alerter.IsEnabled() {
		indicator = alerts.FaultIndicator{Alerts: alerter, Host: host, Next: indicator}
	}

	opts, cleanup, err := setup(&cfg, alerter, host)
	if err != nil {
		lifecycle.Fatal(indicator, "startup failed: %w", err)
		return
	}

	err = lifecycle.RunServer(context.Background(), opts)

	cleanup()

	if err != nil {
		lifecycle.Fatal(indicator, "%w", err)
		return
	}

	log.Printf("Shutdown complete")
}

// setup builds every component. Any error here is a fatal startup failure.
func setup(cfg *config.DataloggerConfig, alerter alerts.AlertService, host string) (*lifecycle.ServerOptions, func(), error) {
	var closers []func()

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	fail := func(err error) (*lifecycle.ServerOptions, func(), error) {
		cleanup()

		return nil, nil, err
	}

	clk := clock.System{}
	initTime := clk.Now()

	encoder, err := intervallog.NewEncoder(cfg.LogFormat)
	if err != nil {
		return fail(err)
	}

	appender, err := intervallog.NewFileAppender(intervallog.LogPath(cfg.LogDir, initTime, encoder.Extension()))
	if err != nil {
		return fail(fmt.Errorf("failed to prepare log file: %w", err))
	}

	log.Printf("Logging %s records to %s", cfg.LogFormat, appender.Path())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return fail(fmt.Errorf("failed to register metrics: %w", err))
	}

	history, err := openHistory(cfg.API)
	if err != nil {
		return fail(err)
	}

	closers = append(closers, func() {
		if err := history.Close(); err != nil {
			log.Printf("Error closing record history: %v", err)
		}
	})

	hub := api.NewHub(0)
	state := status.New(initTime)

	logger := intervallog.NewLogger(initTime, clk, appender, encoder, state,
		intervallog.ObserverFunc(history.SaveRecord),
		recorder,
		hub,
	)

	decoder, err := decode.New(decode.Format(cfg.LineFormat), cfg.Marker, cfg.Sensors)
	if err != nil {
		return fail(err)
	}

	var counters ingest.Counters = recorder
	if alerter.IsEnabled() {
		failures := alerts.NewFailureAlerts(recorder, alerter, host)
		closers = append(closers, failures.Wait)
		counters = failures
	}

	pipeline := ingest.NewPipeline(decoder, cfg.SubjectLabel, logger, counters)

	port, err := serial.Open(serial.Config{
		Device:      cfg.Serial.Device,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: time.Duration(cfg.Serial.ReadTimeout),
	})
	if err != nil {
		return fail(err)
	}

	assets := web.DefaultAssets()
	if cfg.AssetsDir != "" {
		assets = web.DirAssets(cfg.AssetsDir)
	}

	page := web.NewServer(web.Config{
		RequestBuffer:  cfg.RequestBuffer,
		RequestTimeout: time.Duration(cfg.RequestTimeout),
	}, assets, state, encoder, recorder)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		closePort(port)

		return fail(fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddr, err))
	}

	services := []lifecycle.NamedService{
		{Name: "status page", Service: page.Service(ln)},
		{Name: "ingestion", Service: ingest.NewService(pipeline, port.Lines(ingest.DefaultMaxLine), port)},
	}

	if cfg.API.Enabled {
		apiServer := api.NewAPIServer(api.Config{
			ListenAddr: cfg.API.ListenAddr,
			MaxConns:   cfg.API.MaxConns,
			MaxRecords: cfg.API.History,
		}, state, history, hub, reg)

		services = append(services, lifecycle.NamedService{Name: "api", Service: apiServer})
	}

	if cfg.Watchdog.Threshold > 0 {
		check := monitoring.StaleRecordCheck(state, clk, time.Duration(cfg.Watchdog.Threshold), alerter, host)
		watchdog := monitoring.NewMonitor(monitoring.MonitorConfig{Interval: time.Duration(cfg.Watchdog.Interval)}, check)

		services = append(services, lifecycle.NamedService{Name: "watchdog", Service: watchdog})
	}

	return &lifecycle.ServerOptions{ServiceName: "datalogger", Services: services}, cleanup, nil
}

func newAlerter(hooks []config.WebhookConfig) (alerts.Group, error) {
	group := make(alerts.Group, 0, len(hooks))

	for _, hook := range hooks {
		headers := make([]alerts.Header, 0, len(hook.Headers))
		for _, h := range hook.Headers {
			headers = append(headers, alerts.Header{Key: h.Key, Value: h.Value})
		}

		w, err := alerts.NewWebhookAlerter(alerts.WebhookConfig{
			Enabled:  hook.Enabled,
			URL:      hook.URL,
			Headers:  headers,
			Template: hook.Template,
			Cooldown: time.Duration(hook.Cooldown),
		})
		if err != nil {
			return nil, err
		}

		group = append(group, w)
	}

	return group, nil
}

func openHistory(cfg config.APIConfig) (db.Service, error) {
	if cfg.DBPath == "" {
		return db.NewMemory(cfg.History), nil
	}

	history, err := db.New(cfg.DBPath, cfg.History)
	if err != nil {
		return nil, fmt.Errorf("failed to open record history: %w", err)
	}

	log.Printf("Record history stored in %s", cfg.DBPath)

	return history, nil
}

func closePort(port *serial.Port) {
	if err := port.Close(); err != nil {
		log.Printf("Error closing serial port: %v", err)
	}
}
