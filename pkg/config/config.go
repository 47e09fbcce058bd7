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

package config

import (
	"time"

	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/report"
	"github.com/caas-team/healthprobe/pkg/watch"
)

type Config struct {
	Probe  ProbeConfig
	Watch  WatchConfig
	Output OutputConfig
	Api    ApiConfig
}

// ProbeConfig is the configuration of a single probe
type ProbeConfig struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// WatchConfig is the configuration of the continuous monitoring
type WatchConfig struct {
	Enabled  bool
	Interval time.Duration
	Count    int
}

// OutputConfig selects the report format
type OutputConfig struct {
	JSON  bool
	Quiet bool
}

// ApiConfig is the configuration for the metrics API
type ApiConfig struct {
	ListeningAddress string
}

// NewConfig creates a new Config with the default values
func NewConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			URL:       probe.DefaultURL,
			Timeout:   probe.DefaultTimeout,
			UserAgent: probe.DefaultUserAgent,
		},
		Watch: WatchConfig{
			Interval: watch.DefaultInterval,
		},
	}
}

// SetURL sets the probed url, normalized to an absolute http(s) url
func (c *Config) SetURL(url string) {
	c.Probe.URL = probe.NormalizeURL(url)
}

// SetTimeout sets the probe timeout
// timeout in seconds
func (c *Config) SetTimeout(timeout int) {
	c.Probe.Timeout = time.Duration(timeout) * time.Second
}

// SetVersion sets the user agent sent with every probe
func (c *Config) SetVersion(version string) {
	if version == "" {
		c.Probe.UserAgent = probe.DefaultUserAgent
		return
	}
	c.Probe.UserAgent = "healthprobe/" + version
}

func (c *Config) SetWatch(enabled bool) {
	c.Watch.Enabled = enabled
}

// SetInterval sets the watch interval
// interval in seconds
func (c *Config) SetInterval(interval int) {
	c.Watch.Interval = time.Duration(interval) * time.Second
}

// SetCount sets the maximum amount of probes in watch mode
func (c *Config) SetCount(count int) {
	c.Watch.Count = count
}

func (c *Config) SetJSON(enabled bool) {
	c.Output.JSON = enabled
}

func (c *Config) SetQuiet(enabled bool) {
	c.Output.Quiet = enabled
}

func (c *Config) SetApiAddress(address string) {
	c.Api.ListeningAddress = address
}

// HasApi returns true if the metrics API should be served
func (c *Config) HasApi() bool {
	return c.Api.ListeningAddress != ""
}

// Format returns the report format selected by the output flags.
// JSON takes precedence over quiet.
func (c *Config) Format() report.Format {
	switch {
	case c.Output.JSON:
		return report.FormatJSON
	case c.Output.Quiet:
		return report.FormatCompact
	default:
		return report.FormatPretty
	}
}

// ProberConfig returns the configuration of the prober
func (c *Config) ProberConfig() probe.Config {
	return probe.Config{
		URL:       c.Probe.URL,
		Timeout:   c.Probe.Timeout,
		UserAgent: c.Probe.UserAgent,
	}
}

// WatcherConfig returns the configuration of the watcher
func (c *Config) WatcherConfig() watch.Config {
	return watch.Config{
		Interval: c.Watch.Interval,
		Count:    c.Watch.Count,
	}
}
