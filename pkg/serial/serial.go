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

// Package serial reads the sensor UART.
package serial

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mfreeman451/datalogger/pkg/ingest"
	"github.com/tarm/serial"
)

const (
	defaultBaud        = 115200
	defaultReadTimeout = time.Second
)

var errOpenPort = errors.New("failed to open serial port")

// Config describes the serial device.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// Port is an open serial device. Its Read reports an idle poll interval as
// ingest.ErrTimeout rather than io.EOF.
type Port struct {
	device string
	port   io.ReadCloser
}

// Open opens the device described by cfg.
func Open(cfg Config) (*Port, error) {
	if cfg.Baud <= 0 {
		cfg.Baud = defaultBaud
	}

	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errOpenPort, cfg.Device, err)
	}

	log.Printf("Serial port opened: device=%s baud=%d", cfg.Device, cfg.Baud)

	return &Port{device: cfg.Device, port: p}, nil
}

func (p *Port) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, ingest.ErrTimeout
	}

	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}

	return n, err
}

// Lines returns a line source over the port.
func (p *Port) Lines(maxLine int) ingest.LineSource {
	return ingest.NewLineReader(p, maxLine)
}

func (p *Port) Close() error {
	log.Printf("Closing serial port %s", p.device)

	return p.port.Close()
}
