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
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/healthprobe/internal/httpclient"
	"github.com/caas-team/healthprobe/internal/logger"
)

const (
	// DefaultTimeout bounds the request and the TLS check
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the prober towards the target
	DefaultUserAgent = "healthprobe/1.0"
	// maxDrain is the amount of body bytes read to allow connection reuse
	maxDrain = 64 << 10
)

// Config defines the target of a Prober
type Config struct {
	// URL is normalized with NormalizeURL
	URL string
	// Timeout bounds the request and the TLS check
	Timeout time.Duration
	// UserAgent is sent with every request
	UserAgent string
}

// Prober performs single health probes against one target.
// It is not safe for concurrent use by multiple goroutines.
type Prober struct {
	url       string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	certs     CertChecker
	now       func() time.Time
	metrics   metrics
}

// Option configures a Prober
type Option func(*Prober)

// WithClient replaces the http client used for the primary request
func WithClient(c *http.Client) Option {
	return func(p *Prober) {
		p.client = c
	}
}

// WithCertChecker replaces the TLS certificate lookup
func WithCertChecker(c CertChecker) Option {
	return func(p *Prober) {
		p.certs = c
	}
}

// WithClock replaces the clock used for timestamps and response times
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// New creates a new Prober
func New(cfg Config, opts ...Option) *Prober {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	p := &Prober{
		url:       NormalizeURL(cfg.URL),
		timeout:   timeout,
		userAgent: userAgent,
		client:    httpclient.New(timeout),
		certs:     NewTLSChecker(timeout),
		now:       time.Now,
		metrics:   newMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Target returns the normalized URL that is probed
func (p *Prober) Target() string {
	return p.url
}

// GetMetricCollectors returns all metric collectors of the prober
func (p *Prober) GetMetricCollectors() []prometheus.Collector {
	return p.metrics.collectors()
}

// Probe performs one GET request against the target and, if it succeeded,
// a TLS certificate check of the target host.
// Every failure is reported through the status of the returned Result.
func (p *Prober) Probe(ctx context.Context) Result {
	log := logger.FromContext(ctx).With("url", p.url)
	res := p.probe(ctx)
	p.metrics.observe(res)

	log.DebugContext(ctx, "Probe finished", "status", res.Status.String())
	return res
}

func (p *Prober) probe(ctx context.Context) Result {
	log := logger.FromContext(ctx).With("url", p.url)
	at := p.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		log.DebugContext(ctx, "Error while creating request", "error", err)
		return newError(p.url, at, fmt.Sprintf("Unexpected error: %v", err))
	}
	req.Header.Set("User-Agent", p.userAgent)

	start := p.now()
	resp, err := p.client.Do(req) //nolint:bodyclose // closed below
	if err != nil {
		log.DebugContext(ctx, "Error while requesting target", "error", err)
		status, msg := classify(err)
		return p.failure(status, at, msg)
	}
	elapsed := p.now().Sub(start)
	defer func(b io.ReadCloser) {
		_, _ = io.Copy(io.Discard, io.LimitReader(b, maxDrain))
		if cErr := b.Close(); cErr != nil {
			log.DebugContext(ctx, "Failed to close response body", "error", cErr)
		}
	}(resp.Body)

	if !isSuccess(resp.StatusCode) {
		log.DebugContext(ctx, "Target responded with an error status", "status", resp.Status)
		return newHTTPError(p.url, at, resp.StatusCode, httpErrorMessage(resp.StatusCode))
	}

	cert, ok := p.certs.Check(ctx, hostname(p.url))
	return newHealthy(p.url, at, resp.StatusCode, elapsed, cert, ok)
}

// failure creates the result for a request that did not produce a response
func (p *Prober) failure(status Status, at time.Time, msg string) Result {
	switch status {
	case StatusTimeout:
		return newTimeout(p.url, at)
	case StatusUnreachable:
		return newUnreachable(p.url, at, msg)
	default:
		return newError(p.url, at, msg)
	}
}

// hostname extracts the host name without port from the target
func hostname(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
