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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber counts its calls and runs an optional hook on every call
type fakeProber struct {
	calls int
	hook  func(call int)
}

func (f *fakeProber) Probe(_ context.Context) probe.Result {
	f.calls++
	if f.hook != nil {
		f.hook(f.calls)
	}
	code := 200
	return probe.Result{
		URL:       f.Target(),
		Status:    probe.StatusHealthy,
		HTTPCode:  &code,
		Timestamp: "2026-10-19T12:00:00.000000Z",
		IsUp:      true,
	}
}

func (*fakeProber) Target() string {
	return "https://example.com"
}

type failingReporter struct{}

func (failingReporter) Render(probe.Result) (string, error) {
	return "", errors.New("boom")
}

func TestWatcher_Run_Count(t *testing.T) {
	p := &fakeProber{}
	var out bytes.Buffer
	var hooked []probe.Result

	w := New(p, report.Compact{}, &out, Config{Interval: time.Millisecond, Count: 3},
		WithResultHook(func(r probe.Result) { hooked = append(hooked, r) }))

	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, 3, p.calls)
	assert.Len(t, hooked, 3)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "🔍 Starting continuous monitoring of https://example.com\n"))
	assert.Contains(t, got, "⏱️  Check interval: 0.001 seconds\n")
	for _, prefix := range []string{"[1] ", "[2] ", "[3] "} {
		assert.Contains(t, got, prefix+"UP|https://example.com|200|0ms\n")
	}
	assert.NotContains(t, got, "[4] ")
	assert.NotContains(t, got, "Monitoring stopped by user")
	assert.Equal(t, 4, strings.Count(got, separator+"\n"), "header separator plus one per probe")
}

func TestWatcher_Run_CanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &fakeProber{}
	var out bytes.Buffer
	w := New(p, report.Compact{}, &out, Config{Interval: time.Hour},
		WithResultHook(func(probe.Result) { cancel() }))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}

	assert.Equal(t, 1, p.calls)
	assert.Contains(t, out.String(), "[1] ")
	assert.True(t, strings.HasSuffix(out.String(), "\n🛑 Monitoring stopped by user\n"))
}

func TestWatcher_Run_CanceledDuringProbe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &fakeProber{hook: func(call int) {
		if call == 2 {
			cancel()
		}
	}}
	var out bytes.Buffer
	w := New(p, report.Compact{}, &out, Config{Interval: time.Millisecond})

	require.NoError(t, w.Run(ctx))

	assert.Equal(t, 2, p.calls)
	assert.Contains(t, out.String(), "[1] ")
	assert.NotContains(t, out.String(), "[2] ", "interrupted probes are not reported")
	assert.Contains(t, out.String(), "Monitoring stopped by user")
}

func TestWatcher_Run_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProber{}
	var out bytes.Buffer
	require.NoError(t, New(p, report.Compact{}, &out, Config{Count: 5}).Run(ctx))

	assert.Zero(t, p.calls)
	assert.Contains(t, out.String(), "Monitoring stopped by user")
}

func TestWatcher_Run_StoppedWithCause(t *testing.T) {
	errFailed := errors.New("api failed")
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	p := &fakeProber{hook: func(call int) {
		if call == 1 {
			cancel(errFailed)
		}
	}}
	var out bytes.Buffer

	err := New(p, report.Compact{}, &out, Config{Interval: time.Millisecond}).Run(ctx)
	require.ErrorIs(t, err, errFailed)
	assert.NotContains(t, out.String(), "Monitoring stopped by user")
}

func TestWatcher_Run_RenderError(t *testing.T) {
	p := &fakeProber{}
	var out bytes.Buffer

	err := New(p, failingReporter{}, &out, Config{Interval: time.Millisecond, Count: 2}).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestNew_DefaultInterval(t *testing.T) {
	w := New(&fakeProber{}, report.Pretty{}, &bytes.Buffer{}, Config{})
	assert.Equal(t, DefaultInterval, w.config.Interval)
	assert.Zero(t, w.config.Count)
}
