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

package intervallog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mfreeman451/datalogger/pkg/clock"
	"github.com/mfreeman451/datalogger/pkg/models"
	"github.com/mfreeman451/datalogger/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDiskGone = errors.New("disk gone")

func sampleReadings() []models.FormattedReading {
	return []models.FormattedReading{
		{Subject: 1, Label: "Subject 1", Duration: models.Duration{Seconds: 12, Milliseconds: 500}},
		{Subject: 2, Label: "Subject 2", Duration: models.Duration{Minutes: 1, Seconds: 30}},
	}
}

func TestLoggerChainsIntervals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	t2 := t1.Add(time.Minute)

	mockClock := clock.NewMockClock(ctrl)
	gomock.InOrder(
		mockClock.EXPECT().Now().Return(t1),
		mockClock.EXPECT().Now().Return(t2),
	)

	mockAppender := NewMockAppender(ctrl)
	mockAppender.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	state := status.New(t0)
	l := NewLogger(t0, mockClock, mockAppender, JSONEncoder{}, state)

	first, err := l.Log(context.Background(), sampleReadings())
	require.NoError(t, err)

	second, err := l.Log(context.Background(), sampleReadings())
	require.NoError(t, err)

	assert.Equal(t, t0, first.Start)
	assert.Equal(t, t1, first.End)
	assert.Equal(t, first.End, second.Start)
	assert.Equal(t, t2, second.End)
	assert.Equal(t, t2, l.Boundary())

	snap := state.Snapshot()
	require.NotNil(t, snap.LastRecord)
	assert.Equal(t, second, snap.LastRecord)
}

func TestLoggerAppendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	t2 := t1.Add(time.Minute)

	mockClock := clock.NewMockClock(ctrl)
	gomock.InOrder(
		mockClock.EXPECT().Now().Return(t1),
		mockClock.EXPECT().Now().Return(t2),
	)

	mockAppender := NewMockAppender(ctrl)
	gomock.InOrder(
		mockAppender.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errDiskGone),
		mockAppender.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil),
	)

	mockObserver := NewMockObserver(ctrl)
	mockObserver.EXPECT().OnRecord(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	state := status.New(t0)
	l := NewLogger(t0, mockClock, mockAppender, TextEncoder{}, state, mockObserver)

	rec, err := l.Log(context.Background(), sampleReadings())
	require.ErrorIs(t, err, ErrAppendFailed)
	require.ErrorIs(t, err, errDiskGone)
	assert.Nil(t, rec)
	assert.Equal(t, t0, l.Boundary())
	assert.Nil(t, state.Snapshot().LastRecord)

	// The next success widens its interval over the failed one.
	rec, err = l.Log(context.Background(), sampleReadings())
	require.NoError(t, err)
	assert.Equal(t, t0, rec.Start)
	assert.Equal(t, t2, rec.End)
	assert.Equal(t, t2, l.Boundary())
	assert.Equal(t, rec, state.Snapshot().LastRecord)
}

func TestLoggerObserverErrorIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mockAppender := NewMockAppender(ctrl)
	mockAppender.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	failing := NewMockObserver(ctrl)
	failing.EXPECT().OnRecord(gomock.Any(), gomock.Any()).Return(errDiskGone)

	var seen *models.LogRecord

	after := ObserverFunc(func(_ context.Context, rec *models.LogRecord) error {
		seen = rec
		return nil
	})

	l := NewLogger(t0, clock.Func(func() time.Time { return t0.Add(time.Second) }),
		mockAppender, JSONEncoder{}, nil, failing, after)

	rec, err := l.Log(context.Background(), sampleReadings())
	require.NoError(t, err)
	assert.Same(t, rec, seen)
	assert.Equal(t, t0.Add(time.Second), l.Boundary())
}

func TestLoggerRejectsEmptyReadings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLogger(t0, clock.NewMockClock(ctrl), NewMockAppender(ctrl), JSONEncoder{}, nil)

	_, err := l.Log(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, t0, l.Boundary())
}

func TestLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	t0 := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	path := LogPath(dir, t0, JSONEncoder{}.Extension())

	appender, err := NewFileAppender(path)
	require.NoError(t, err)

	ticks := []time.Time{t0.Add(time.Minute), t0.Add(2 * time.Minute), t0.Add(3 * time.Minute)}
	next := 0
	clk := clock.Func(func() time.Time {
		now := ticks[next]
		next++

		return now
	})

	l := NewLogger(t0, clk, appender, JSONEncoder{}, nil)

	for range ticks {
		_, err := l.Log(context.Background(), sampleReadings())
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		`{"interval":{"start":"2024-03-09T08:01:00Z","end":"2024-03-09T08:02:00Z"},`+
			`"subjects":{"Subject 1":"0h 0m 12s 500ms","Subject 2":"0h 1m 30s 0ms"}}`,
		lines[1])
	assert.Equal(t, filepath.Join(dir, "2024-03-09.json"), appender.Path())
}
