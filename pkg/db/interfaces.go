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

// Package db keeps a queryable history of logged interval records.
package db

import (
	"context"

	"github.com/mfreeman451/datalogger/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/mfreeman451/datalogger/pkg/db Service

// DefaultHistory is the number of records kept when no limit is configured.
const DefaultHistory = 1000

// Service represents all record history operations.
type Service interface {
	// SaveRecord stores rec, evicting the oldest records past the history limit.
	SaveRecord(ctx context.Context, rec *models.LogRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.LogRecord, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
	Close() error
}
