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
	"strconv"
	"strings"
)

// interpolate fills positional placeholders in tmpl: "{}" takes the next
// value, "{0}".."{n}" pick one explicitly, and "{{" / "}}" are literal braces.
// Mixing automatic and explicit numbering is an error, as is a placeholder
// past the end of args.
func interpolate(tmpl string, args ...string) (string, error) {
	var (
		b        strings.Builder
		next     int
		auto     bool
		explicit bool
	)

	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]

		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i++

				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at %d", errTemplate, i)
			}

			field := tmpl[i+1 : i+1+end]
			i += end + 1

			var idx int

			if field == "" {
				if explicit {
					return "", fmt.Errorf("%w: mixed field numbering", errTemplate)
				}

				auto = true
				idx = next
				next++
			} else {
				n, err := strconv.Atoi(field)
				if err != nil || n < 0 {
					return "", fmt.Errorf("%w: bad field %q", errTemplate, field)
				}

				if auto {
					return "", fmt.Errorf("%w: mixed field numbering", errTemplate)
				}

				explicit = true
				idx = n
			}

			if idx >= len(args) {
				return "", fmt.Errorf("%w: index %d", errMissingArgument, idx)
			}

			b.WriteString(args[idx])
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i++

				continue
			}

			return "", fmt.Errorf("%w: single '}' at %d", errTemplate, i)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
