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

// Package lifecycle runs the long-lived services of a binary and shuts them
// down together.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const ShutdownTimeout = 10 * time.Second

var errNoServices = errors.New("no services to run")

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// NamedService pairs a service with the name used in log lines.
type NamedService struct {
	Name    string
	Service Service
}

// ServerOptions holds configuration for running services.
type ServerOptions struct {
	ServiceName string
	Services    []NamedService
	// Signals overrides SIGINT and SIGTERM as shutdown triggers.
	Signals []os.Signal
}

// RunServer starts every service and blocks until a signal arrives, ctx is
// done or a service fails. All services are then stopped. A service
// returning nil from Start does not trigger shutdown.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	if len(opts.Services) == 0 {
		return errNoServices
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	errChan := make(chan error, len(opts.Services))

	var wg sync.WaitGroup

	for _, svc := range opts.Services {
		wg.Add(1)

		go func(svc NamedService) {
			defer wg.Done()

			log.Printf("Starting %s", svc.Name)

			if err := svc.Service.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", svc.Name, err)
			}
		}(svc)
	}

	err := waitForShutdown(ctx, opts.Signals, errChan)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if stopErr := stopAll(shutdownCtx, opts.Services); stopErr != nil {
		log.Printf("Error during service shutdown: %v", stopErr)

		err = errors.Join(err, fmt.Errorf("shutdown error: %w", stopErr))
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Printf("Timed out waiting for services to exit")
	}

	return err
}

func waitForShutdown(ctx context.Context, signals []os.Signal, errChan <-chan error) error {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)

		return nil
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)

		return fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")

		return nil
	}
}

// stopAll stops services in reverse start order.
func stopAll(ctx context.Context, services []NamedService) error {
	var errs []error

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Service.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", services[i].Name, err))
		}
	}

	return errors.Join(errs...)
}
