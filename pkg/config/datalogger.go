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

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultBaud           = 115200
	defaultReadTimeout    = time.Second
	defaultLineFormat     = "csv"
	defaultMarker         = "Sujeto"
	defaultSubjectLabel   = "Subject"
	defaultLogDir         = "."
	defaultLogFormat      = "json"
	defaultListenAddr     = ":80"
	defaultRequestTimeout = 5 * time.Second
	defaultRequestBuffer  = 1024
	defaultAPIListenAddr  = ":8080"
	defaultAPIMaxConns    = 4
	defaultAPIHistory     = 1000
	defaultWatchInterval  = time.Minute
)

var (
	errMissingDevice   = errors.New("serial.device is required")
	errNegativeSensors = errors.New("sensors must not be negative")
	errLineFormat      = errors.New("line_format must be \"csv\" or \"marker\"")
	errLogFormat       = errors.New("log_format must be \"json\" or \"text\"")
	errNegativeSetting = errors.New("setting must not be negative")
	errInvalidConfig   = errors.New("invalid configuration")
	errWebhookURL      = errors.New("enabled webhook needs a url")
)

// SerialConfig selects the UART the sensor board is attached to.
type SerialConfig struct {
	Device      string   `json:"device" yaml:"device"`
	Baud        int      `json:"baud" yaml:"baud"`
	ReadTimeout Duration `json:"read_timeout" yaml:"read_timeout"`
}

// APIConfig configures the optional tooling API.
type APIConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	MaxConns   int    `json:"max_conns" yaml:"max_conns"`
	// DBPath keeps the record history in SQLite; empty keeps it in memory.
	DBPath  string `json:"db_path" yaml:"db_path"`
	History int    `json:"history" yaml:"history"`
}

// DataloggerConfig is the configuration of the datalogger binary.
type DataloggerConfig struct {
	Serial SerialConfig `json:"serial" yaml:"serial"`
	// Sensors is the number of subjects each line must carry; zero accepts any count.
	Sensors        int       `json:"sensors" yaml:"sensors"`
	LineFormat     string    `json:"line_format" yaml:"line_format"`
	Marker         string    `json:"marker" yaml:"marker"`
	SubjectLabel   string    `json:"subject_label" yaml:"subject_label"`
	LogDir         string    `json:"log_dir" yaml:"log_dir"`
	LogFormat      string    `json:"log_format" yaml:"log_format"`
	ListenAddr     string    `json:"listen_addr" yaml:"listen_addr"`
	AssetsDir      string    `json:"assets_dir" yaml:"assets_dir"`
	RequestTimeout Duration  `json:"request_timeout" yaml:"request_timeout"`
	RequestBuffer  int       `json:"request_buffer" yaml:"request_buffer"`
	API            APIConfig `json:"api" yaml:"api"`
	// FaultLED is a sysfs brightness file lit on fatal errors.
	FaultLED string          `json:"fault_led" yaml:"fault_led"`
	Webhooks []WebhookConfig `json:"webhooks,omitempty" yaml:"webhooks,omitempty"`
	Watchdog WatchdogConfig  `json:"watchdog" yaml:"watchdog"`
}

// WatchdogConfig raises an alert when no record has been logged for
// Threshold. A zero Threshold disables the watchdog.
type WatchdogConfig struct {
	Interval  Duration `json:"interval" yaml:"interval"`
	Threshold Duration `json:"threshold" yaml:"threshold"`
}

// WebhookConfig represents a webhook notification configuration.
type WebhookConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	URL      string   `json:"url" yaml:"url"`
	Cooldown Duration `json:"cooldown" yaml:"cooldown"`
	Template string   `json:"template" yaml:"template"`
	Headers  []Header `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Validate checks required fields and fills in defaults.
func (c *DataloggerConfig) Validate() error {
	if c.Serial.Device == "" {
		return fmt.Errorf("%w: %w", errInvalidConfig, errMissingDevice)
	}

	if c.Sensors < 0 {
		return fmt.Errorf("%w: %w", errInvalidConfig, errNegativeSensors)
	}

	for name, v := range map[string]int{
		"serial.baud":    c.Serial.Baud,
		"request_buffer": c.RequestBuffer,
		"api.max_conns":  c.API.MaxConns,
		"api.history":    c.API.History,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %w: %s", errInvalidConfig, errNegativeSetting, name)
		}
	}

	for i, w := range c.Webhooks {
		if w.Enabled && w.URL == "" {
			return fmt.Errorf("%w: %w: webhooks[%d]", errInvalidConfig, errWebhookURL, i)
		}
	}

	c.applyDefaults()

	switch c.LineFormat {
	case "csv", "marker":
	default:
		return fmt.Errorf("%w: %w: %q", errInvalidConfig, errLineFormat, c.LineFormat)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %w: %q", errInvalidConfig, errLogFormat, c.LogFormat)
	}

	return nil
}

func (c *DataloggerConfig) applyDefaults() {
	setDefault(&c.Serial.Baud, defaultBaud)
	setDefault(&c.Serial.ReadTimeout, Duration(defaultReadTimeout))
	setDefault(&c.LineFormat, defaultLineFormat)
	setDefault(&c.Marker, defaultMarker)
	setDefault(&c.SubjectLabel, defaultSubjectLabel)
	setDefault(&c.LogDir, defaultLogDir)
	setDefault(&c.LogFormat, defaultLogFormat)
	setDefault(&c.ListenAddr, defaultListenAddr)
	setDefault(&c.RequestTimeout, Duration(defaultRequestTimeout))
	setDefault(&c.RequestBuffer, defaultRequestBuffer)
	setDefault(&c.API.ListenAddr, defaultAPIListenAddr)
	setDefault(&c.API.MaxConns, defaultAPIMaxConns)
	setDefault(&c.API.History, defaultAPIHistory)

	if c.Watchdog.Threshold > 0 {
		setDefault(&c.Watchdog.Interval, Duration(defaultWatchInterval))
	}
}

func setDefault[T comparable](field *T, value T) {
	var zero T

	if *field == zero {
		*field = value
	}
}
