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

package lifecycle

import (
	"fmt"
	"log"
	"os"
)

// Indicator signals an unrecoverable fault to whoever watches the device.
type Indicator interface {
	Fault(err error)
}

// LogIndicator reports faults in the log only.
type LogIndicator struct{}

func (LogIndicator) Fault(err error) {
	log.Printf("FAULT: %v", err)
}

// LEDIndicator lights a sysfs LED, e.g. /sys/class/leds/led0/brightness.
type LEDIndicator struct {
	Path string
}

func (l LEDIndicator) Fault(err error) {
	log.Printf("FAULT: %v", err)

	if werr := os.WriteFile(l.Path, []byte("1\n"), 0o644); werr != nil {
		log.Printf("Failed to light fault LED %s: %v", l.Path, werr)
	}
}

var exit = os.Exit

// Fatal signals ind, logs the diagnostic and exits with status 1.
func Fatal(ind Indicator, format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)

	if ind != nil {
		ind.Fault(err)
	}

	log.Printf("Fatal: %v", err)
	exit(1)
}
