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
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/mfreeman451/datalogger/pkg/models"
)

const (
	createTablesSQL = `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		readings TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_end_time
		ON records(end_time);
	`

	insertRecordSQL = `
		INSERT INTO records (start_time, end_time, readings)
		VALUES (?, ?, ?)
	`

	pruneRecordsSQL = `
		DELETE FROM records
		WHERE id <= (SELECT MAX(id) FROM records) - ?
	`

	recentRecordsSQL = `
		SELECT start_time, end_time, readings
		FROM records
		ORDER BY id DESC
		LIMIT ?
	`
)

// DB is the SQLite backed history.
type DB struct {
	*sql.DB
	history int
}

// New opens or creates the database at dbPath and initializes the schema.
// history bounds the number of rows kept; zero or less means DefaultHistory.
func New(dbPath string, history int) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// SQLite serializes writers anyway.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		closeDB(sqlDB)

		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	if _, err := sqlDB.Exec(createTablesSQL); err != nil {
		closeDB(sqlDB)

		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	if history <= 0 {
		history = DefaultHistory
	}

	return &DB{DB: sqlDB, history: history}, nil
}

func closeDB(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// SaveRecord inserts rec and prunes rows past the history limit in one transaction.
func (db *DB) SaveRecord(ctx context.Context, rec *models.LogRecord) (err error) {
	readings, err := json.Marshal(rec.Readings)
	if err != nil {
		return fmt.Errorf("%w record: %w", ErrFailedToInsert, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error rolling back transaction: %v", rbErr)
			}

			return
		}

		err = tx.Commit()
	}()

	if _, err = tx.ExecContext(ctx, insertRecordSQL,
		models.FormatTime(rec.Start),
		models.FormatTime(rec.End),
		string(readings)); err != nil {
		return fmt.Errorf("%w record: %w", ErrFailedToInsert, err)
	}

	if _, err = tx.ExecContext(ctx, pruneRecordsSQL, db.history); err != nil {
		return fmt.Errorf("%w records: %w", ErrFailedToClean, err)
	}

	return nil
}

// Recent returns up to limit records, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]models.LogRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := db.QueryContext(ctx, recentRecordsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w recent records: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	records := make([]models.LogRecord, 0, limit)

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w recent records: %w", ErrFailedToQuery, err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (models.LogRecord, error) {
	var (
		rec             models.LogRecord
		start, end, raw string
	)

	if err := rows.Scan(&start, &end, &raw); err != nil {
		return rec, fmt.Errorf("%w record row: %w", ErrFailedToScan, err)
	}

	var err error

	if rec.Start, err = time.Parse(models.TimeLayout, start); err != nil {
		return rec, fmt.Errorf("%w start time: %w", ErrFailedToScan, err)
	}

	if rec.End, err = time.Parse(models.TimeLayout, end); err != nil {
		return rec, fmt.Errorf("%w end time: %w", ErrFailedToScan, err)
	}

	if err := json.Unmarshal([]byte(raw), &rec.Readings); err != nil {
		return rec, fmt.Errorf("%w readings: %w", ErrFailedToScan, err)
	}

	return rec, nil
}

// Count returns the number of stored records.
func (db *DB) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w record count: %w", ErrFailedToQuery, err)
	}

	return n, nil
}
