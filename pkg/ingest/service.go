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

package ingest

import (
	"context"
	"io"
	"sync"
)

// Service runs a Pipeline over an already opened source under lifecycle
// control. Stop closes the source, which unblocks a pending read.
type Service struct {
	pipeline *Pipeline
	src      LineSource
	closer   io.Closer
	once     sync.Once
	closeErr error
}

// NewService returns a Service reading src. closer may be nil.
func NewService(p *Pipeline, src LineSource, closer io.Closer) *Service {
	return &Service{pipeline: p, src: src, closer: closer}
}

func (s *Service) Start(ctx context.Context) error {
	return s.pipeline.Run(ctx, s.src)
}

func (s *Service) Stop(context.Context) error {
	s.once.Do(func() {
		if s.closer != nil {
			s.closeErr = s.closer.Close()
		}
	})

	return s.closeErr
}
