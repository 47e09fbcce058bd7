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

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caas-team/healthprobe/internal/helper"
	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/report"
)

// DefaultInterval is the pause between two probes
const DefaultInterval = 60 * time.Second

var separator = strings.Repeat("-", 50)

// Prober performs a single probe of a target
type Prober interface {
	// Probe returns the result of one probe attempt
	Probe(ctx context.Context) probe.Result
	// Target returns the url that is probed
	Target() string
}

// Config is the configuration of a Watcher
type Config struct {
	// Interval is the pause after each probe
	Interval time.Duration
	// Count is the maximum amount of probes, 0 means unbounded
	Count int
}

// Watcher repeatedly probes a target and writes a report for every result
type Watcher struct {
	prober   Prober
	reporter report.Reporter
	out      io.Writer
	config   Config
	onResult func(probe.Result)
}

// Option configures a Watcher
type Option func(*Watcher)

// WithResultHook registers a function that receives every reported result
func WithResultHook(f func(probe.Result)) Option {
	return func(w *Watcher) {
		w.onResult = f
	}
}

// New creates a new Watcher
func New(p Prober, r report.Reporter, out io.Writer, cfg Config, opts ...Option) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	w := &Watcher{
		prober:   p,
		reporter: r,
		out:      out,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run probes the target until the configured count is reached
// or the context is done. A plain cancellation is not an error,
// any other cause is returned.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).With("target", w.prober.Target())

	fmt.Fprintf(w.out, "🔍 Starting continuous monitoring of %s\n", w.prober.Target())
	fmt.Fprintf(w.out, "⏱️  Check interval: %g seconds\n", w.config.Interval.Seconds())
	fmt.Fprintln(w.out, separator)

	for n := 1; w.config.Count == 0 || n <= w.config.Count; n++ {
		if ctx.Err() != nil {
			return w.stop(ctx)
		}

		res := w.prober.Probe(ctx)
		// a probe interrupted by cancellation is not reported
		if ctx.Err() != nil {
			return w.stop(ctx)
		}
		if w.onResult != nil {
			w.onResult(res)
		}

		rendered, err := w.reporter.Render(res)
		if err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
		fmt.Fprintf(w.out, "[%d] %s\n", n, rendered)
		fmt.Fprintln(w.out, separator)
		log.DebugContext(ctx, "Probe finished", "iteration", n, "status", res.Status)

		if n == w.config.Count {
			break
		}
		if err := helper.Wait(ctx, w.config.Interval); err != nil {
			return w.stop(ctx)
		}
	}

	log.InfoContext(ctx, "Monitoring finished", "count", w.config.Count)
	return nil
}

// stop ends the monitoring after the context is done.
// Only a plain cancellation is treated as a stop by the user.
func (w *Watcher) stop(ctx context.Context) error {
	cause := context.Cause(ctx)
	logger.FromContext(ctx).InfoContext(ctx, "Monitoring stopped", "reason", cause)
	if !errors.Is(cause, context.Canceled) {
		return fmt.Errorf("monitoring stopped: %w", cause)
	}
	fmt.Fprintln(w.out, "\n🛑 Monitoring stopped by user")
	return nil
}
