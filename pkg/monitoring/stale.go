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

package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mfreeman451/datalogger/pkg/alerts"
	"github.com/mfreeman451/datalogger/pkg/clock"
	"github.com/mfreeman451/datalogger/pkg/models"
)

var errNoRecentRecord = errors.New("no record logged recently")

// StateReader exposes the latest serving snapshot.
type StateReader interface {
	Snapshot() models.Snapshot
}

// StaleRecordCheck reports when nothing has been logged for longer than
// threshold, counting from startup until the first record. notify may be nil.
func StaleRecordCheck(
	state StateReader, clk clock.Clock, threshold time.Duration, notify alerts.AlertService, host string) CheckFunc {
	return func(ctx context.Context) error {
		snap := state.Snapshot()

		last := snap.InitTime
		if snap.LastRecord != nil {
			last = snap.LastRecord.End
		}

		silent := clk.Now().Sub(last)
		if silent <= threshold {
			return nil
		}

		err := fmt.Errorf("%w: last activity %s (%v ago)", errNoRecentRecord, models.FormatTime(last), silent)

		if notify != nil {
			alert := &alerts.WebhookAlert{
				Level:   alerts.Warning,
				Title:   "No records logged",
				Message: err.Error(),
				Host:    host,
				Details: map[string]any{"last_activity": models.FormatTime(last)},
			}

			if aerr := notify.Alert(ctx, alert); aerr != nil {
				log.Printf("Failed to send stale record alert: %v", aerr)
			}
		}

		return err
	}
}
