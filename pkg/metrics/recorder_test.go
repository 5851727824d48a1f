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

package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman451/datalogger/pkg/models"
)

func newRecorder(t *testing.T) (*Recorder, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()

	r, err := NewRecorder(reg)
	require.NoError(t, err)

	return r, reg
}

func TestRecorderCounters(t *testing.T) {
	r, _ := newRecorder(t)

	r.DecodeFailed()
	r.DecodeFailed()
	r.StorageFailed()
	r.Request(200)
	r.Request(200)
	r.Request(404)

	assert.InDelta(t, 2, testutil.ToFloat64(r.decodeFailures), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.storeFailures), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.requests.WithLabelValues("200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(r.requests.WithLabelValues("500")), 0)
}

func TestRecorderOnRecord(t *testing.T) {
	r, reg := newRecorder(t)

	end := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := &models.LogRecord{
		Start: end.Add(-time.Minute),
		End:   end,
		Readings: []models.FormattedReading{
			{Subject: 1, Label: "Subject 1", Duration: models.Duration{Seconds: 3, Milliseconds: 250}},
			{Subject: 2, Label: "Subject 2", Duration: models.Duration{Minutes: 1, Seconds: 10, Milliseconds: 5}},
		},
	}

	require.NoError(t, r.OnRecord(context.Background(), rec))

	assert.InDelta(t, 1, testutil.ToFloat64(r.logged), 0)
	assert.InDelta(t, float64(end.Unix()), testutil.ToFloat64(r.lastRecord), 0)

	expected := `
# HELP datalogger_records_logged_total Interval records appended to the log file.
# TYPE datalogger_records_logged_total counter
datalogger_records_logged_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "datalogger_records_logged_total"))

	count, err := testutil.GatherAndCount(reg, "datalogger_reading_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDurationSeconds(t *testing.T) {
	got := durationSeconds(models.Duration{Hours: 1, Minutes: 2, Seconds: 3, Milliseconds: 500})
	assert.InDelta(t, 3723.5, got, 1e-9)
}

func TestNewRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	require.Error(t, err)
}
