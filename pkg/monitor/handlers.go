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

package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/api"
	"gopkg.in/yaml.v3"
)

type encoder interface {
	Encode(v any) error
}

// handleLatestResult serves the latest result of the monitored target
// Returns a 404 if no probe has finished yet
func (m *Monitor) handleLatestResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	res, ok := m.db.Get(m.prober.Target())
	if !ok {
		writeStatus(w, r, http.StatusNotFound)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error("Failed to encode response", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}
}

// handleHealthz reports ready once the first result is available
func (m *Monitor) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if _, ok := m.db.Get(m.prober.Target()); !ok {
		writeStatus(w, r, http.StatusServiceUnavailable)
		return
	}
	writeStatus(w, r, http.StatusOK)
}

// handleOpenAPI serves the openapi document as yaml
// or as json if requested via the Accept header
func (m *Monitor) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	oapi, err := api.OpenAPI(r.Context(), m.version)
	if err != nil {
		log.Error("Failed to create openapi", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}

	var marshaler encoder
	switch r.Header.Get("Accept") {
	case "application/json":
		marshaler = json.NewEncoder(w)
		w.Header().Add("Content-Type", "application/json")
	default:
		marshaler = yaml.NewEncoder(w)
		w.Header().Add("Content-Type", "text/yaml")
	}

	if err = marshaler.Encode(oapi); err != nil {
		log.Error("Failed to marshal openapi", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}
}

// writeStatus writes the status code with its text as body
func writeStatus(w http.ResponseWriter, r *http.Request, code int) {
	w.WriteHeader(code)
	if _, err := w.Write([]byte(http.StatusText(code))); err != nil {
		logger.FromContext(r.Context()).Error("Failed to write response", "error", err)
	}
}
