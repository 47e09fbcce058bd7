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

package probe

import (
	"time"
)

// TimestampLayout is the ISO-8601 UTC layout of Result.Timestamp
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Result is the outcome of one probe attempt.
// Results are created by the per-status constructors only,
// so the optional fields always match the status.
// The field order is the key order of the JSON report.
type Result struct {
	URL            string   `json:"url"`
	Status         Status   `json:"status"`
	HTTPCode       *int     `json:"http_code"`
	ResponseTimeMS *float64 `json:"response_time_ms"`
	SSLValid       *bool    `json:"ssl_valid"`
	SSLExpiryDays  *int     `json:"ssl_expiry_days"`
	ErrorMessage   *string  `json:"error_message"`
	Timestamp      string   `json:"timestamp"`
	IsUp           bool     `json:"is_up"`
}

func newResult(url string, status Status, at time.Time) Result {
	return Result{
		URL:       url,
		Status:    status,
		Timestamp: at.UTC().Format(TimestampLayout),
		IsUp:      status.IsUp(),
	}
}

// newHealthy creates the result of a successful probe.
// The certificate fields are only set when the TLS check could determine them.
func newHealthy(url string, at time.Time, code int, responseTime time.Duration, cert CertStatus, certOK bool) Result {
	r := newResult(url, StatusHealthy, at)
	ms := float64(responseTime) / float64(time.Millisecond)
	r.HTTPCode = &code
	r.ResponseTimeMS = &ms
	if certOK {
		valid := true
		days := cert.ExpiryDays
		r.SSLValid = &valid
		r.SSLExpiryDays = &days
	}
	return r
}

func newHTTPError(url string, at time.Time, code int, msg string) Result {
	r := newResult(url, StatusHTTPError, at)
	r.HTTPCode = &code
	r.ErrorMessage = &msg
	return r
}

func newUnreachable(url string, at time.Time, msg string) Result {
	r := newResult(url, StatusUnreachable, at)
	r.ErrorMessage = &msg
	return r
}

func newTimeout(url string, at time.Time) Result {
	r := newResult(url, StatusTimeout, at)
	msg := timeoutMessage
	r.ErrorMessage = &msg
	return r
}

func newError(url string, at time.Time, msg string) Result {
	r := newResult(url, StatusError, at)
	r.ErrorMessage = &msg
	return r
}
