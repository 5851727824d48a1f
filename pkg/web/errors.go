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

package web

import "errors"

var (
	errNotFound        = errors.New("resource not found")
	errBadRequest      = errors.New("unsupported request")
	errReadRequest     = errors.New("failed to read request")
	errTemplate        = errors.New("malformed template")
	errMissingArgument = errors.New("template references a missing value")
	errPanic           = errors.New("panic while building response")
)
