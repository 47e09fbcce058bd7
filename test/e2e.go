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

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/caas-team/healthprobe/pkg/config"
	"github.com/caas-team/healthprobe/pkg/monitor"
	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/report"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

var _ Runner = (*E2E)(nil)

// E2E is an end-to-end test.
type E2E struct {
	t       *testing.T
	config  *config.Config
	out     syncBuffer
	mu      sync.Mutex
	running bool
}

func newE2E(t *testing.T, cfg *config.Config) *E2E {
	return &E2E{t: t, config: cfg}
}

// Run runs the monitoring until the configured count is reached
// or the context is canceled.
func (t *E2E) Run(ctx context.Context) error {
	if t.isRunning() {
		t.t.Fatal("E2E.Run must be called once")
	}

	r, err := report.New(t.config.Format())
	if err != nil {
		return err
	}
	m, err := monitor.New(t.config, probe.New(t.config.ProberConfig()), r, &t.out, "e2e")
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	return m.Run(ctx)
}

// URL returns the url of the given api path.
func (t *E2E) URL(path string) string {
	return (&url.URL{Scheme: "http", Host: t.config.Api.ListeningAddress, Path: path}).String()
}

// Output returns the reports written so far.
func (t *E2E) Output() string {
	return t.out.String()
}

// AwaitStartup waits for the provided URL to return status ok.
//
// Must be called after the e2e test started with [E2E.Run].
func (t *E2E) AwaitStartup(u string, failureTimeout time.Duration) *E2E {
	t.t.Helper()
	// To ensure the goroutine is started before we are checking if the test is running.
	const initialDelay = 100 * time.Millisecond
	<-time.After(initialDelay)
	if !t.isRunning() {
		t.t.Fatal("E2E.AwaitStartup must be called after E2E.Run")
	}

	const retryInterval = 100 * time.Millisecond
	start := time.Now()
	deadline := start.Add(failureTimeout)

	for {
		status, err := get(u)
		if err == nil && status == http.StatusOK {
			t.t.Logf("%s is ready after %v", u, time.Since(start))
			return t
		}
		if time.Now().After(deadline) {
			t.t.Fatalf("%s is not ready [%d] after %v: %v", u, status, failureTimeout, err)
			return t
		}
		<-time.After(retryInterval)
	}
}

func get(u string) (int, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// isRunning returns true if the test is running.
func (t *E2E) isRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// e2eHttpAsserter is an HTTP asserter for end-to-end tests.
type e2eHttpAsserter struct {
	e2e      *E2E
	url      string
	asserter func(body []byte) error
	schema   *openapi3.T
	router   routers.Router
}

// HttpAssertion creates a new HTTP assertion for the given URL.
func (t *E2E) HttpAssertion(u string) *e2eHttpAsserter {
	return &e2eHttpAsserter{e2e: t, url: u}
}

// Assert asserts the status code and optional validations against the response.
// Optional validations must be set before calling this method.
//
// Must be called after the e2e test started with [E2E.Run].
func (a *e2eHttpAsserter) Assert(status int) {
	a.e2e.t.Helper()
	if !a.e2e.isRunning() {
		a.e2e.t.Fatal("e2eHttpAsserter.Assert must be called after E2E.Run")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, a.url, http.NoBody)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create request: %v", err)
		return
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.e2e.t.Errorf("Failed to get %s: %v", a.url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		a.e2e.t.Errorf("Want status code %d for %s, got %d", status, a.url, resp.StatusCode)
		return
	}
	a.e2e.t.Logf("Got status code %d for %s", resp.StatusCode, a.url)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		a.e2e.t.Errorf("Failed to read response body: %v", err)
		return
	}

	if status == http.StatusOK {
		if a.schema != nil && a.router != nil {
			if err = a.assertSchema(req, resp.StatusCode, data); err != nil {
				a.e2e.t.Errorf("Response from %q does not match schema: %v", a.url, err)
				return
			}
		}

		if a.asserter != nil {
			if err := a.asserter(data); err != nil {
				a.e2e.t.Errorf("Failed to assert response: %v", err)
			}
		}
	}
}

// WithSchema fetches the OpenAPI schema and validates the response against it.
func (a *e2eHttpAsserter) WithSchema() *e2eHttpAsserter {
	a.e2e.t.Helper()
	schema, err := a.fetchSchema()
	if err != nil {
		a.e2e.t.Fatalf("Failed to fetch OpenAPI schema: %v", err)
	}

	router, err := gorillamux.NewRouter(schema)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create router from OpenAPI schema: %v", err)
	}

	a.schema = schema
	a.router = router
	return a
}

// WithResult validates the response body as probe result
// with the given function.
func (a *e2eHttpAsserter) WithResult(check func(res probe.Result) error) *e2eHttpAsserter {
	a.asserter = func(body []byte) error {
		var res probe.Result
		if err := json.Unmarshal(body, &res); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
		return check(res)
	}
	return a
}

// WithBody validates the raw response body.
func (a *e2eHttpAsserter) WithBody(check func(body []byte) error) *e2eHttpAsserter {
	a.asserter = check
	return a
}

// fetchSchema fetches the OpenAPI schema from the server.
func (a *e2eHttpAsserter) fetchSchema() (*openapi3.T, error) {
	ctx := context.Background()
	u, err := url.Parse(a.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	u.Path = "/openapi"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET OpenAPI schema: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI schema: %w", err)
	}

	loader := openapi3.NewLoader()
	schema, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI schema: %w", err)
	}

	if err = schema.Validate(ctx); err != nil {
		return nil, fmt.Errorf("OpenAPI schema validation error: %w", err)
	}

	return schema, nil
}

// assertSchema asserts the response body against the OpenAPI schema.
func (a *e2eHttpAsserter) assertSchema(req *http.Request, status int, data []byte) error {
	route, _, err := a.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("failed to find route: %w", err)
	}

	responseRef := route.Operation.Responses[strconv.Itoa(status)]
	if responseRef == nil || responseRef.Value == nil {
		return fmt.Errorf("no response defined in OpenAPI schema for status code %d", status)
	}

	mediaType := responseRef.Value.Content.Get("application/json")
	if mediaType == nil {
		return errors.New("no media type defined in OpenAPI schema for Content-Type 'application/json'")
	}

	var body any
	if err = json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	if err = mediaType.Schema.Value.VisitJSON(body); err != nil {
		return fmt.Errorf("response body does not match schema: %w", err)
	}

	return nil
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
