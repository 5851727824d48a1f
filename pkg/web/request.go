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

import (
	"bytes"
	"fmt"
)

const (
	rootResource = "/index.html"
	methodPrefix = "GET /"
)

var rootAliases = map[string]bool{
	"/":          true,
	"/index.htm": true,
}

// parseRequest returns the resource named by the request line. Only the
// first line is examined; anything but GET is rejected.
func parseRequest(req []byte) (string, error) {
	if !bytes.HasPrefix(req, []byte(methodPrefix)) {
		return "", errBadRequest
	}

	line := req
	if i := bytes.IndexAny(req, "\r\n"); i >= 0 {
		line = req[:i]
	}

	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: %q", errBadRequest, line)
	}

	path := string(fields[1])
	if rootAliases[path] {
		path = rootResource
	}

	return path, nil
}
