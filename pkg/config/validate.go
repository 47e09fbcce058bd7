// healthprobe
// (C) 2023, Deutsche Telekom IT GmbH
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
	"context"
	"errors"
	"net"
	"time"

	"github.com/caas-team/healthprobe/internal/logger"
)

// Validate validates the config. All violations are returned joined.
func (c *Config) Validate(ctx context.Context, fm *RunFlagsNameMapping) error {
	log := logger.FromContext(ctx)

	var errs []error
	invalid := func(field string, reason error, value any) {
		log.ErrorContext(ctx, "Invalid configuration", "flag", field, "value", value, "reason", reason)
		errs = append(errs, ErrInvalidConfig{Field: field, Reason: reason})
	}

	if c.Probe.Timeout < time.Second {
		invalid(fm.Timeout, ErrInvalidTimeout, c.Probe.Timeout.String())
	}

	if c.Watch.Enabled {
		if c.Watch.Interval < time.Second {
			invalid(fm.Interval, ErrInvalidInterval, c.Watch.Interval.String())
		}
		if c.Watch.Count < 0 {
			invalid(fm.Count, ErrInvalidCount, c.Watch.Count)
		}
	}

	if c.HasApi() {
		if !c.Watch.Enabled {
			invalid(fm.ApiAddress, ErrApiWithoutWatch, c.Api.ListeningAddress)
		} else if _, _, err := net.SplitHostPort(c.Api.ListeningAddress); err != nil {
			invalid(fm.ApiAddress, ErrInvalidApiAddress, c.Api.ListeningAddress)
		}
	}

	return errors.Join(errs...)
}
