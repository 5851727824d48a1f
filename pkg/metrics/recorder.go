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

// Package metrics exposes logger and server activity as Prometheus collectors.
package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfreeman451/datalogger/pkg/models"
)

const namespace = "datalogger"

// Recorder counts pipeline and request outcomes. It is safe for concurrent use.
type Recorder struct {
	logged         prometheus.Counter
	decodeFailures prometheus.Counter
	storeFailures  prometheus.Counter
	requests       *prometheus.CounterVec
	lastRecord     prometheus.Gauge
	readings       prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		logged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_logged_total",
			Help:      "Interval records appended to the log file.",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Input lines discarded because they could not be decoded.",
		}),
		storeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_failures_total",
			Help:      "Records that could not be appended to the log file.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Status page responses by status code.",
		}, []string{"status"}),
		lastRecord: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_record_timestamp_seconds",
			Help:      "End of the most recently logged interval, as a Unix time.",
		}),
		readings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reading_duration_seconds",
			Help:      "Logged subject durations.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{
		r.logged, r.decodeFailures, r.storeFailures, r.requests, r.lastRecord, r.readings,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) DecodeFailed() { r.decodeFailures.Inc() }

func (r *Recorder) StorageFailed() { r.storeFailures.Inc() }

// Request counts one status page response.
func (r *Recorder) Request(status int) {
	r.requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// OnRecord accounts for a logged record.
func (r *Recorder) OnRecord(_ context.Context, rec *models.LogRecord) error {
	r.logged.Inc()
	r.lastRecord.Set(float64(rec.End.Unix()))

	for _, reading := range rec.Readings {
		r.readings.Observe(durationSeconds(reading.Duration))
	}

	return nil
}

func durationSeconds(d models.Duration) float64 {
	return float64(d.Hours*3600+d.Minutes*60+d.Seconds) + float64(d.Milliseconds)/1000
}
