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

import "errors"

var (
	// ErrAppendFailed is returned when a record could not be made durable.
	// The interval is folded into the next successful log.
	ErrAppendFailed = errors.New("failed to append record")

	ErrUnknownEncoding = errors.New("unknown log encoding")
	errNoReadings      = errors.New("no readings to log")
	errEncode          = errors.New("failed to encode record")
)
