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

package status

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mfreeman451/datalogger/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateInitial(t *testing.T) {
	init := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(init)

	snap := s.Snapshot()
	assert.Equal(t, init, snap.InitTime)
	assert.Nil(t, snap.LastRecord)
}

func TestStatePublishCopies(t *testing.T) {
	init := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(init)

	rec := &models.LogRecord{
		Start:    init,
		End:      init.Add(time.Minute),
		Readings: []models.FormattedReading{{Subject: 1, Label: "Subject 1"}},
	}
	s.Publish(rec)

	rec.Readings[0].Label = "mutated"

	snap := s.Snapshot()
	require.NotNil(t, snap.LastRecord)
	assert.Equal(t, init, snap.InitTime)
	assert.Equal(t, "Subject 1", snap.LastRecord.Readings[0].Label)
}

// Readers must only ever observe records whose fields belong together.
func TestStateConcurrentReaders(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(base)

	const writes = 2000

	var wg sync.WaitGroup

	done := make(chan struct{})

	for r := 0; r < 4; r++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
				}

				snap := s.Snapshot()
				if snap.LastRecord == nil {
					continue
				}

				rec := snap.LastRecord
				n := int(rec.End.Sub(base) / time.Second)

				if !assert.Len(t, rec.Readings, 1) {
					return
				}

				assert.Equal(t, fmt.Sprintf("Subject %d", n), rec.Readings[0].Label)
				assert.Equal(t, rec.Start.Add(time.Second), rec.End)
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		s.Publish(&models.LogRecord{
			Start:    base.Add(time.Duration(i-1) * time.Second),
			End:      base.Add(time.Duration(i) * time.Second),
			Readings: []models.FormattedReading{{Subject: 1, Label: fmt.Sprintf("Subject %d", i)}},
		})
	}

	close(done)
	wg.Wait()

	assert.Equal(t, base.Add(writes*time.Second), s.Snapshot().LastRecord.End)
}
