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
	"crypto/x509"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLSChecker_Check(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	trusted := x509.NewCertPool()
	trusted.AddCert(srv.Certificate())

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, closedPort, err := net.SplitHostPort(closed.Addr().String())
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	now := time.Now()

	tests := []struct {
		name    string
		host    string
		port    string
		roots   *x509.CertPool
		wantOK  bool
		wantDay int
	}{
		{
			name:    "valid certificate",
			host:    "127.0.0.1",
			port:    u.Port(),
			roots:   trusted,
			wantOK:  true,
			wantDay: daysUntil(now, srv.Certificate().NotAfter),
		},
		{
			name:   "untrusted certificate",
			host:   "127.0.0.1",
			port:   u.Port(),
			roots:  x509.NewCertPool(),
			wantOK: false,
		},
		{
			name:   "hostname mismatch",
			host:   "localhost",
			port:   u.Port(),
			roots:  trusted,
			wantOK: false,
		},
		{
			name:   "connection refused",
			host:   "127.0.0.1",
			port:   closedPort,
			roots:  trusted,
			wantOK: false,
		},
		{
			name:   "empty host",
			host:   "",
			port:   u.Port(),
			roots:  trusted,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &TLSChecker{
				Timeout: 2 * time.Second,
				Port:    tt.port,
				RootCAs: tt.roots,
				now:     func() time.Time { return now },
			}

			got, ok := c.Check(context.Background(), tt.host)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDay, got.ExpiryDays)
				assert.True(t, got.NotAfter.Equal(srv.Certificate().NotAfter))
				assert.Greater(t, got.ExpiryDays, 0)
			} else {
				assert.Equal(t, CertStatus{}, got)
			}
		})
	}
}

func TestTLSChecker_Check_HandshakeTimeout(t *testing.T) {
	// accepts connections but never answers the handshake
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)

	c := &TLSChecker{Timeout: 100 * time.Millisecond, Port: port}
	start := time.Now()
	_, ok := c.Check(context.Background(), "127.0.0.1")

	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{name: "same instant", t: now, want: 0},
		{name: "less than a day", t: now.Add(23 * time.Hour), want: 0},
		{name: "exactly one day", t: now.Add(24 * time.Hour), want: 1},
		{name: "truncates partial days", t: now.Add(89*24*time.Hour + 23*time.Hour), want: 89},
		{name: "truncates toward zero in the past", t: now.Add(-36 * time.Hour), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysUntil(now, tt.t))
		})
	}
}
