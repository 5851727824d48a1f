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

// Package monitoring pkg/monitoring/monitor.go
package monitoring

import (
	"context"
	"log"
	"sync"
	"time"
)

// MonitorConfig holds configuration for monitoring.
type MonitorConfig struct {
	Interval time.Duration
}

// CheckFunc is run once per interval. A returned error is logged.
type CheckFunc func(context.Context) error

// Monitor runs a check periodically.
type Monitor struct {
	config MonitorConfig
	check  CheckFunc
	done   chan struct{}
	once   sync.Once
}

// NewMonitor creates a monitor running check every cfg.Interval.
func NewMonitor(cfg MonitorConfig, check CheckFunc) *Monitor {
	return &Monitor{
		config: cfg,
		check:  check,
		done:   make(chan struct{}),
	}
}

// Start runs the check until ctx is done or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	if err := m.check(ctx); err != nil {
		log.Printf("Initial check failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.done:
			return nil
		case <-ticker.C:
			if err := m.check(ctx); err != nil {
				log.Printf("Check failed: %v", err)
			}
		}
	}
}

// Stop stops the monitoring.
func (m *Monitor) Stop(context.Context) error {
	m.once.Do(func() { close(m.done) })

	return nil
}
