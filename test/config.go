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
	"net"
	"testing"
	"time"

	"github.com/caas-team/healthprobe/pkg/config"
)

// ConfigBuilder builds the configuration of a monitoring run.
type ConfigBuilder struct {
	url      string
	timeout  time.Duration
	interval time.Duration
	count    int
	address  string
}

// NewConfig returns a new config builder with a free api address
// and the minimal watch interval.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		timeout:  2 * time.Second,
		interval: time.Second,
	}
}

// WithTarget sets the probed url.
func (b *ConfigBuilder) WithTarget(u string) *ConfigBuilder {
	b.url = u
	return b
}

// WithTimeout sets the probe timeout.
func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	b.timeout = timeout
	return b
}

// WithInterval sets the watch interval.
func (b *ConfigBuilder) WithInterval(interval time.Duration) *ConfigBuilder {
	b.interval = interval
	return b
}

// WithCount limits the amount of probes.
func (b *ConfigBuilder) WithCount(count int) *ConfigBuilder {
	b.count = count
	return b
}

// WithAddress sets the listening address of the api.
func (b *ConfigBuilder) WithAddress(addr string) *ConfigBuilder {
	b.address = addr
	return b
}

// Config returns the validated config.
func (b *ConfigBuilder) Config(t *testing.T) *config.Config {
	t.Helper()
	if b.address == "" {
		b.address = freeAddress(t)
	}

	cfg := config.NewConfig()
	cfg.SetURL(b.url)
	cfg.Probe.Timeout = b.timeout
	cfg.SetWatch(true)
	cfg.Watch.Interval = b.interval
	cfg.SetCount(b.count)
	cfg.SetApiAddress(b.address)
	cfg.SetVersion("e2e")
	return cfg
}

// freeAddress returns a local address that is not in use.
func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free address: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}
