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

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/getkin/kin-openapi/openapi3"
)

const (
	// PathLatestResult serves the latest result of the monitored target
	PathLatestResult = "/v1/result/latest"
	// PathHealthz serves the readiness of the monitor
	PathHealthz = "/healthz"
	// PathMetrics serves the prometheus metrics
	PathMetrics = "/metrics"
	// PathOpenapi serves the openapi document of the api
	PathOpenapi = "/openapi"

	resultSchemaName = "Result"
)

func newDocument(version string) openapi3.T {
	return openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Healthprobe API",
			Description: "Serves the results of the healthprobe monitoring",
			Version:     version,
			Contact: &openapi3.Contact{
				URL:   "https://caas.telekom.de",
				Email: "caas-request@telekom.de",
				Name:  "CaaS Team",
			},
		},
		Paths:      make(openapi3.Paths),
		Extensions: make(map[string]any),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
		Servers: openapi3.Servers{},
	}
}

// OpenAPI generates the openapi document of the api
// including the schema of the probe result
func OpenAPI(ctx context.Context, version string) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	doc := newDocument(version)

	ref, err := probe.Schema()
	if err != nil {
		log.Error("Failed to get schema of the probe result", "error", err)
		return openapi3.T{}, &ErrCreateOpenapiSchema{name: resultSchemaName, err: err}
	}
	doc.Components.Schemas[resultSchemaName] = ref

	resultDesc := "Latest probe result of the monitored target"
	notFoundDesc := "No probe has finished yet"
	doc.Paths[PathLatestResult] = &openapi3.PathItem{
		Description: "latest result",
		Get: &openapi3.Operation{
			Description: "Returns the result of the most recent probe",
			Tags:        []string{"Results"},
			Responses: openapi3.Responses{
				fmt.Sprint(http.StatusOK): &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: &resultDesc,
						Content: openapi3.NewContentWithSchemaRef(
							openapi3.NewSchemaRef("#/components/schemas/"+resultSchemaName, ref.Value),
							[]string{"application/json"},
						),
					},
				},
				fmt.Sprint(http.StatusNotFound): &openapi3.ResponseRef{
					Value: &openapi3.Response{Description: &notFoundDesc},
				},
			},
		},
	}

	healthyDesc := "The monitor has reported at least one result"
	unhealthyDesc := "The monitor has not reported a result yet"
	readiness := &openapi3.Operation{
		Description: "Returns the readiness of the monitor",
		Tags:        []string{"Health"},
		Responses: openapi3.Responses{
			fmt.Sprint(http.StatusOK): &openapi3.ResponseRef{
				Value: &openapi3.Response{Description: &healthyDesc},
			},
			fmt.Sprint(http.StatusServiceUnavailable): &openapi3.ResponseRef{
				Value: &openapi3.Response{Description: &unhealthyDesc},
			},
		},
	}
	doc.Paths[PathHealthz] = &openapi3.PathItem{
		Description: "readiness",
		Get:         readiness,
		Head:        readiness,
	}

	return doc, nil
}
