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
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// nullableFields are the optional fields of a Result, reported as null when absent
var nullableFields = []string{
	"http_code",
	"response_time_ms",
	"ssl_valid",
	"ssl_expiry_days",
	"error_message",
}

// Schema provides the openapi schema of the JSON report of a Result
func Schema() (*openapi3.SchemaRef, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(Result{}, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}

	for _, name := range nullableFields {
		if prop, ok := ref.Value.Properties[name]; ok && prop.Value != nil {
			prop.Value.Nullable = true
		}
	}
	if status, ok := ref.Value.Properties["status"]; ok && status.Value != nil {
		status.Value.Enum = []any{
			StatusHealthy.String(),
			StatusHTTPError.String(),
			StatusUnreachable.String(),
			StatusTimeout.String(),
			StatusError.String(),
		}
	}
	if ts, ok := ref.Value.Properties["timestamp"]; ok && ts.Value != nil {
		ts.Value.Format = "date-time"
	}
	ref.Value.Required = []string{"url", "status", "timestamp", "is_up"}
	return ref, nil
}
