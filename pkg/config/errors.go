// healthprobe
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeout is returned when the probe timeout is below one second
	ErrInvalidTimeout = errors.New("timeout must be at least one second")
	// ErrInvalidInterval is returned when the watch interval is below one second
	ErrInvalidInterval = errors.New("interval must be at least one second")
	// ErrInvalidCount is returned when the watch count is negative
	ErrInvalidCount = errors.New("count must not be negative")
	// ErrApiWithoutWatch is returned when the metrics API is configured for a single probe
	ErrApiWithoutWatch = errors.New("metrics address requires watch mode")
	// ErrInvalidApiAddress is returned when the metrics address is not a host:port pair
	ErrInvalidApiAddress = errors.New("metrics address must be host:port")
)

// ErrInvalidConfig is returned when a config field holds an invalid value
type ErrInvalidConfig struct {
	Field  string
	Reason error
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid value of --%s: %v", e.Field, e.Reason)
}

func (e ErrInvalidConfig) Unwrap() error {
	return e.Reason
}
