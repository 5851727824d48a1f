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
	"fmt"
	"net/http"
)

const (
	serverName = "datalogger"

	errorHeader = "HTTP/1.1 %d %s\r\n" +
		"Server: %s\r\n" +
		"Content-Length: %d\r\n" +
		"Connection: Close\r\n" +
		"Content-Type: text/html; charset=iso-8859-1\r\n\r\n"

	errorBody = "<!DOCTYPE HTML PUBLIC \"-//IETF//DTD HTML 2.0//EN\">\r\n" +
		"<html><head><title>%d %s</title></head>" +
		"<body><h1>%s</h1></body></html>"
)

// Fixed error documents, computed once.
var (
	notFoundResponse      = errorResponse(http.StatusNotFound)
	internalErrorResponse = errorResponse(http.StatusInternalServerError)
)

func errorResponse(code int) []byte {
	reason := http.StatusText(code)
	body := fmt.Sprintf(errorBody, code, reason, reason)

	return []byte(fmt.Sprintf(errorHeader, code, reason, serverName, len(body)) + body)
}
