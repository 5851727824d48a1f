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

package alerts

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mfreeman451/datalogger/pkg/lifecycle"
)

const sendTimeout = 5 * time.Second

// Group fans an alert out to every enabled service.
type Group []AlertService

func (g Group) IsEnabled() bool {
	for _, s := range g {
		if s.IsEnabled() {
			return true
		}
	}

	return false
}

func (g Group) Alert(ctx context.Context, alert *WebhookAlert) error {
	var errs []error

	for _, s := range g {
		if !s.IsEnabled() {
			continue
		}

		a := *alert
		if err := s.Alert(ctx, &a); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// FaultIndicator forwards fatal faults to the alert services after
// signalling Next.
type FaultIndicator struct {
	Alerts AlertService
	Host   string
	Next   lifecycle.Indicator
}

func (f FaultIndicator) Fault(err error) {
	if f.Next != nil {
		f.Next.Fault(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	alert := &WebhookAlert{
		Level:   Error,
		Title:   "Datalogger fault",
		Message: err.Error(),
		Host:    f.Host,
	}

	if aerr := f.Alerts.Alert(ctx, alert); aerr != nil {
		log.Printf("Failed to send fault alert: %v", aerr)
	}
}

// Counters mirrors the per-line failure events of the ingestion pipeline.
type Counters interface {
	DecodeFailed()
	StorageFailed()
}

// FailureAlerts passes failure events on to next and raises a warning for
// every storage failure. Alerts are sent in the background so ingestion is
// never held up by a slow webhook.
type FailureAlerts struct {
	next   Counters
	alerts AlertService
	host   string
	wg     sync.WaitGroup
}

func NewFailureAlerts(next Counters, alerts AlertService, host string) *FailureAlerts {
	return &FailureAlerts{next: next, alerts: alerts, host: host}
}

func (f *FailureAlerts) DecodeFailed() {
	f.next.DecodeFailed()
}

func (f *FailureAlerts) StorageFailed() {
	f.next.StorageFailed()

	f.wg.Add(1)

	go func() {
		defer f.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		alert := &WebhookAlert{
			Level:   Warning,
			Title:   "Log storage failure",
			Message: "An interval record could not be appended. The next record will span the missed interval.",
			Host:    f.host,
		}

		if err := f.alerts.Alert(ctx, alert); err != nil && !errors.Is(err, errWebhookCooldown) {
			log.Printf("Failed to send storage alert: %v", err)
		}
	}()
}

// Wait blocks until pending alerts have been sent.
func (f *FailureAlerts) Wait() {
	f.wg.Wait()
}
