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

package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/test"
)

const startupTimeout = 10 * time.Second

func TestE2E_Monitor(t *testing.T) {
	framework := test.NewFramework(t)

	tests := []struct {
		name       string
		status     int
		wantStatus probe.Status
	}{
		{name: "healthy target", status: http.StatusOK, wantStatus: probe.StatusHealthy},
		{name: "failing target", status: http.StatusBadGateway, wantStatus: probe.StatusHTTPError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer target.Close()

			e2e := framework.E2E(t, test.NewConfig().WithTarget(target.URL).Config(t))
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()

			finish := make(chan error, 1)
			go func() {
				finish <- e2e.Run(ctx)
			}()
			e2e.AwaitStartup(e2e.URL("/healthz"), startupTimeout)

			e2e.HttpAssertion(e2e.URL("/v1/result/latest")).
				WithSchema().
				WithResult(func(res probe.Result) error {
					if res.URL != target.URL {
						return fmt.Errorf("url = %q, want %q", res.URL, target.URL)
					}
					if res.Status != tt.wantStatus {
						return fmt.Errorf("status = %q, want %q", res.Status, tt.wantStatus)
					}
					if res.HTTPCode == nil || *res.HTTPCode != tt.status {
						return fmt.Errorf("http code = %v, want %d", res.HTTPCode, tt.status)
					}
					return nil
				}).
				Assert(http.StatusOK)

			e2e.HttpAssertion(e2e.URL("/metrics")).
				WithBody(func(body []byte) error {
					want := fmt.Sprintf(`healthprobe_probes_total{status=%q,target=%q}`, tt.wantStatus, target.URL)
					if !strings.Contains(string(body), want) {
						return fmt.Errorf("metrics do not contain %s", want)
					}
					return nil
				}).
				Assert(http.StatusOK)

			e2e.HttpAssertion(e2e.URL("/")).Assert(http.StatusOK)
			e2e.HttpAssertion(e2e.URL("/unknown")).Assert(http.StatusNotFound)

			cancel()
			if err := <-finish; err != nil {
				t.Errorf("Monitoring finished with error: %v", err)
			}
			if !strings.Contains(e2e.Output(), "Monitoring stopped by user") {
				t.Errorf("Missing stop notice in output:\n%s", e2e.Output())
			}
		})
	}
}

func TestE2E_Monitor_Count(t *testing.T) {
	framework := test.NewFramework(t)

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer target.Close()

	e2e := framework.E2E(t, test.NewConfig().WithTarget(target.URL).WithCount(2).Config(t))
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := e2e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Monitoring finished with error: %v", err)
	}

	out := e2e.Output()
	for _, want := range []string{"[1] ✅ Health Check", "[2] ✅ Health Check", "   HTTP Code: 204"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[3]") {
		t.Errorf("Output contains more than two probes:\n%s", out)
	}
}
