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

package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/api"
	"github.com/caas-team/healthprobe/pkg/config"
	"github.com/caas-team/healthprobe/pkg/db"
	"github.com/caas-team/healthprobe/pkg/metrics"
	"github.com/caas-team/healthprobe/pkg/report"
	"github.com/caas-team/healthprobe/pkg/watch"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrApiStopped is returned when the api stops serving while the monitoring is still running
var ErrApiStopped = errors.New("api stopped unexpectedly")

// Prober is a watch.Prober exposing its prometheus collectors
type Prober interface {
	watch.Prober
	GetMetricCollectors() []prometheus.Collector
}

// Monitor runs the continuous monitoring of a target
// and serves its results via the optional api
type Monitor struct {
	prober  Prober
	watcher *watch.Watcher
	version string

	db      db.DB
	metrics metrics.Metrics
	api     api.API
}

// New creates a new Monitor.
// The api is only set up if a listening address is configured.
func New(cfg *config.Config, p Prober, r report.Reporter, out io.Writer, version string) (*Monitor, error) {
	m := &Monitor{
		prober:  p,
		version: version,
		db:      db.NewInMemory(),
	}
	m.watcher = watch.New(p, r, out, cfg.WatcherConfig(), watch.WithResultHook(m.db.Save))

	if cfg.HasApi() {
		mt, err := metrics.NewMetrics(p.GetMetricCollectors()...)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		m.metrics = mt
		m.api = api.New(cfg.Api)
	}

	return m, nil
}

// Run starts the monitoring and the api.
// Blocks until the watcher finished or the api failed.
func (m *Monitor) Run(ctx context.Context) error {
	if m.api == nil {
		return m.watcher.Run(ctx)
	}

	log := logger.FromContext(ctx)
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if err := m.api.RegisterRoutes(ctx, m.routes()...); err != nil {
		log.Error("Failed to register routes", "error", err)
		return fmt.Errorf("failed to register routes: %w", err)
	}

	cApi := make(chan error, 1)
	go func() {
		cApi <- m.api.Run(ctx)
	}()
	cWatch := make(chan error, 1)
	go func() {
		cWatch <- m.watcher.Run(ctx)
	}()

	select {
	case err := <-cApi:
		if ctx.Err() == nil {
			log.Error("Api stopped unexpectedly, stopping monitoring", "error", err)
			if err == nil {
				err = ErrApiStopped
			}
			cancel(err)
			<-cWatch
			return err
		}
		return errors.Join(<-cWatch, m.shutdown(ctx))
	case err := <-cWatch:
		return errors.Join(err, m.shutdown(ctx))
	}
}

// shutdown stops the api independently of the context's cancellation
func (m *Monitor) shutdown(ctx context.Context) error {
	return m.api.Shutdown(context.WithoutCancel(ctx))
}

func (m *Monitor) routes() []api.Route {
	return []api.Route{
		{Path: api.PathMetrics, Method: http.MethodGet, Handler: m.metrics.Handler()},
		{Path: api.PathHealthz, Method: http.MethodGet, Handler: http.HandlerFunc(m.handleHealthz)},
		{Path: api.PathHealthz, Method: http.MethodHead, Handler: http.HandlerFunc(m.handleHealthz)},
		{Path: api.PathLatestResult, Method: http.MethodGet, Handler: http.HandlerFunc(m.handleLatestResult)},
		{Path: api.PathOpenapi, Method: http.MethodGet, Handler: http.HandlerFunc(m.handleOpenAPI)},
	}
}
