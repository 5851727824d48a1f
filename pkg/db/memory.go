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

package db

import (
	"context"
	"sync"

	"github.com/mfreeman451/datalogger/pkg/models"
)

// MemoryDB keeps the most recent records in a fixed size ring.
type MemoryDB struct {
	mu      sync.RWMutex
	records []models.LogRecord
	pos     int64
	size    int64
	closed  bool
}

// NewMemory returns a ring holding up to size records; zero or less means
// DefaultHistory.
func NewMemory(size int) *MemoryDB {
	if size <= 0 {
		size = DefaultHistory
	}

	return &MemoryDB{
		records: make([]models.LogRecord, size),
		size:    int64(size),
	}
}

func (m *MemoryDB) SaveRecord(ctx context.Context, rec *models.LogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.records[m.pos%m.size] = *rec.Clone()
	m.pos++

	return nil
}

func (m *MemoryDB) Recent(ctx context.Context, limit int) ([]models.LogRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	n := min(int64(limit), m.pos, m.size)
	out := make([]models.LogRecord, 0, n)

	for i := int64(0); i < n; i++ {
		idx := (m.pos - i - 1) % m.size
		out = append(out, *m.records[idx].Clone())
	}

	return out, nil
}

func (m *MemoryDB) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return min(m.pos, m.size), nil
}

func (m *MemoryDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil

	return nil
}
