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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mfreeman451/datalogger/pkg/models"
)

const logFileMode = 0o644

// FileAppender appends to a single file, opening and closing it on every
// record so that no handle outlives a write.
type FileAppender struct {
	path string
}

// LogPath returns <dir>/<YYYY-MM-DD>.<ext> for the given startup date.
func LogPath(dir string, date time.Time, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s", date.UTC().Format(models.DateLayout), ext))
}

// NewFileAppender creates the file if absent. An existing file is never truncated.
func NewFileAppender(path string) (*FileAppender, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, err
	}

	return &FileAppender{path: path}, nil
}

// Path returns the file being appended to.
func (a *FileAppender) Path() string {
	return a.path
}

func (a *FileAppender) Append(ctx context.Context, line []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	_, err = f.Write(line)

	return err
}
