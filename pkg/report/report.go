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

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/caas-team/healthprobe/pkg/probe"
)

// ErrUnknownFormat is returned when no reporter exists for the requested format
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects how a result is rendered
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
)

// Reporter renders a single probe result
type Reporter interface {
	// Render returns the textual representation of the result
	// without a trailing newline
	Render(res probe.Result) (string, error)
}

// New returns the reporter for the given format
func New(f Format) (Reporter, error) {
	switch f {
	case FormatPretty:
		return Pretty{}, nil
	case FormatCompact:
		return Compact{}, nil
	case FormatJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

const (
	glyphUp   = "✅"
	glyphDown = "❌"
)

// Pretty renders a multi line human readable report
type Pretty struct{}

func (Pretty) Render(res probe.Result) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Health Check\n", glyph(res.IsUp))
	fmt.Fprintf(&b, "   URL: %s\n", res.URL)
	fmt.Fprintf(&b, "   Status: %s\n", upDown(res.IsUp))
	if res.HTTPCode != nil && *res.HTTPCode != 0 {
		fmt.Fprintf(&b, "   HTTP Code: %d\n", *res.HTTPCode)
	}
	if res.ResponseTimeMS != nil {
		fmt.Fprintf(&b, "   Response Time: %.2fms\n", *res.ResponseTimeMS)
	}
	if res.SSLValid != nil {
		state := "Invalid"
		if *res.SSLValid {
			state = "Valid"
		}
		fmt.Fprintf(&b, "   SSL Status: %s %s\n", glyph(*res.SSLValid), state)
	}
	if res.SSLExpiryDays != nil {
		fmt.Fprintf(&b, "   SSL Expires In: %d days\n", *res.SSLExpiryDays)
	}
	if res.ErrorMessage != nil {
		fmt.Fprintf(&b, "   Error: %s\n", *res.ErrorMessage)
	}
	fmt.Fprintf(&b, "   Timestamp: %s", res.Timestamp)

	return b.String(), nil
}

// Compact renders a single pipe separated line
type Compact struct{}

func (Compact) Render(res probe.Result) (string, error) {
	code := "N/A"
	if res.HTTPCode != nil && *res.HTTPCode != 0 {
		code = fmt.Sprint(*res.HTTPCode)
	}
	var ms float64
	if res.ResponseTimeMS != nil {
		ms = *res.ResponseTimeMS
	}
	return fmt.Sprintf("%s|%s|%s|%.0fms", upDown(res.IsUp), res.URL, code, ms), nil
}

// JSON renders the result as indented json.
// Absent optional fields are reported as null.
type JSON struct{}

func (JSON) Render(res probe.Result) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func glyph(ok bool) string {
	if ok {
		return glyphUp
	}
	return glyphDown
}

func upDown(up bool) string {
	if up {
		return "UP"
	}
	return "DOWN"
}
