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

package decode

import "errors"

var (
	// ErrDecodeFailed marks a serial line that must not be logged as data.
	ErrDecodeFailed = errors.New("decode failed")

	ErrInvalidValue   = errors.New("invalid duration value")
	ErrSubjectCount   = errors.New("unexpected subject count")
	ErrUnknownFormat  = errors.New("unknown line format")
	ErrMarkerRequired = errors.New("marker format requires a marker token")
	errMalformedField = errors.New("malformed field")
)
