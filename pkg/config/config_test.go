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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidateJSON(t *testing.T) {
	path := writeFile(t, "datalogger.json", `{
		"serial": {"device": "/dev/ttyUSB0", "read_timeout": "250ms"},
		"sensors": 2,
		"log_dir": "/sd",
		"log_format": "text",
		"request_timeout": 3000000000,
		"watchdog": {"threshold": "30m"},
		"api": {"enabled": true, "db_path": "/sd/history.db"}
	}`)

	var cfg DataloggerConfig
	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Serial.ReadTimeout)
	assert.Equal(t, 2, cfg.Sensors)
	assert.Equal(t, "csv", cfg.LineFormat)
	assert.Equal(t, "Sujeto", cfg.Marker)
	assert.Equal(t, "Subject", cfg.SubjectLabel)
	assert.Equal(t, "/sd", cfg.LogDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":80", cfg.ListenAddr)
	assert.Equal(t, Duration(3*time.Second), cfg.RequestTimeout)
	assert.Equal(t, 1024, cfg.RequestBuffer)
	assert.True(t, cfg.API.Enabled)
	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.Equal(t, 4, cfg.API.MaxConns)
	assert.Equal(t, "/sd/history.db", cfg.API.DBPath)
	assert.Equal(t, 1000, cfg.API.History)
	assert.Equal(t, Duration(30*time.Minute), cfg.Watchdog.Threshold)
	assert.Equal(t, Duration(time.Minute), cfg.Watchdog.Interval)
}

func TestLoadAndValidateYAML(t *testing.T) {
	path := writeFile(t, "datalogger.yaml", `
serial:
  device: /dev/ttyAMA0
  baud: 9600
  read_timeout: 2s
sensors: 3
line_format: marker
marker: Subject
listen_addr: ":8000"
request_buffer: 512
webhooks:
  - enabled: true
    url: http://hooks.local/datalogger
    cooldown: 15m
    headers:
      - key: X-Token
        value: abc
api:
  enabled: false
  max_conns: 8
`)

	var cfg DataloggerConfig
	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, "/dev/ttyAMA0", cfg.Serial.Device)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, Duration(2*time.Second), cfg.Serial.ReadTimeout)
	assert.Equal(t, 3, cfg.Sensors)
	assert.Equal(t, "marker", cfg.LineFormat)
	assert.Equal(t, "Subject", cfg.Marker)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 512, cfg.RequestBuffer)
	assert.Equal(t, 8, cfg.API.MaxConns)
	assert.Equal(t, "json", cfg.LogFormat)

	require.Len(t, cfg.Webhooks, 1)
	assert.Equal(t, "http://hooks.local/datalogger", cfg.Webhooks[0].URL)
	assert.Equal(t, Duration(15*time.Minute), cfg.Webhooks[0].Cooldown)
	assert.Equal(t, []Header{{Key: "X-Token", Value: "abc"}}, cfg.Webhooks[0].Headers)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DataloggerConfig
		wantErr error
	}{
		{
			name:    "missing device",
			cfg:     DataloggerConfig{},
			wantErr: errMissingDevice,
		},
		{
			name:    "negative sensors",
			cfg:     DataloggerConfig{Serial: SerialConfig{Device: "/dev/x"}, Sensors: -1},
			wantErr: errNegativeSensors,
		},
		{
			name:    "negative buffer",
			cfg:     DataloggerConfig{Serial: SerialConfig{Device: "/dev/x"}, RequestBuffer: -5},
			wantErr: errNegativeSetting,
		},
		{
			name:    "line format",
			cfg:     DataloggerConfig{Serial: SerialConfig{Device: "/dev/x"}, LineFormat: "xml"},
			wantErr: errLineFormat,
		},
		{
			name: "webhook without url",
			cfg: DataloggerConfig{
				Serial:   SerialConfig{Device: "/dev/x"},
				Webhooks: []WebhookConfig{{Enabled: true}},
			},
			wantErr: errWebhookURL,
		},
		{
			name:    "log format",
			cfg:     DataloggerConfig{Serial: SerialConfig{Device: "/dev/x"}, LogFormat: "csv"},
			wantErr: errLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errInvalidConfig)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	var cfg DataloggerConfig

	err := LoadFile(filepath.Join(t.TempDir(), "missing.json"), &cfg)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = LoadFile(writeFile(t, "bad.json", "{"), &cfg)
	require.ErrorIs(t, err, errUnmarshal)

	err = LoadFile(writeFile(t, "bad.yml", "serial: [\n"), &cfg)
	require.ErrorIs(t, err, errUnmarshal)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    Duration
		wantErr bool
	}{
		{name: "string", json: `"1m30s"`, want: Duration(90 * time.Second)},
		{name: "nanoseconds", json: `1000`, want: Duration(time.Microsecond)},
		{name: "bad string", json: `"soon"`, wantErr: true},
		{name: "bool", json: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := d.UnmarshalJSON([]byte(tt.json))
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidDuration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDurationMarshal(t *testing.T) {
	b, err := Duration(1500 * time.Millisecond).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(b))
}

func TestValidateConfigWithoutValidator(t *testing.T) {
	assert.NoError(t, ValidateConfig(&struct{}{}))
}
