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

	"github.com/mfreeman451/datalogger/pkg/models"
)

//go:generate mockgen -destination=mock_intervallog.go -package=intervallog github.com/mfreeman451/datalogger/pkg/intervallog Appender,Observer

// Appender makes one encoded record durable.
type Appender interface {
	Append(ctx context.Context, line []byte) error
}

// Encoder renders records for the log file and for the status page.
type Encoder interface {
	// Encode returns one self-describing line, newline included.
	Encode(rec *models.LogRecord) ([]byte, error)
	// Summary renders the readings of rec for display.
	Summary(rec *models.LogRecord) string
	// Extension is the log file suffix, without the dot.
	Extension() string
}

// Observer is notified after a record has been appended and published.
type Observer interface {
	OnRecord(ctx context.Context, rec *models.LogRecord) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, rec *models.LogRecord) error

func (f ObserverFunc) OnRecord(ctx context.Context, rec *models.LogRecord) error {
	return f(ctx, rec)
}
