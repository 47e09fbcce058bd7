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
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"

	"github.com/caas-team/healthprobe/internal/logger"
)

// defaultTLSPort is the port the certificate is read from
const defaultTLSPort = "443"

// CertStatus describes the leaf certificate of a host
type CertStatus struct {
	// NotAfter is the expiry date of the certificate
	NotAfter time.Time
	// ExpiryDays are the whole days left until NotAfter
	ExpiryDays int
}

// CertChecker looks up the certificate of a host.
// The second return value is false whenever the status could not be determined.
type CertChecker interface {
	Check(ctx context.Context, host string) (CertStatus, bool)
}

var _ CertChecker = (*TLSChecker)(nil)

// TLSChecker performs a TLS handshake with hostname verification
// and reads the expiry of the peer's leaf certificate
type TLSChecker struct {
	// Timeout bounds dialing and the handshake
	Timeout time.Duration
	// Port defaults to 443
	Port string
	// RootCAs defaults to the system roots when nil
	RootCAs *x509.CertPool

	now func() time.Time
}

// NewTLSChecker creates a TLSChecker for port 443 using the system roots
func NewTLSChecker(timeout time.Duration) *TLSChecker {
	return &TLSChecker{
		Timeout: timeout,
		Port:    defaultTLSPort,
		now:     time.Now,
	}
}

// Check never fails the caller: every error collapses into an unknown status
func (c *TLSChecker) Check(ctx context.Context, host string) (CertStatus, bool) {
	log := logger.FromContext(ctx).With("host", host)
	if host == "" {
		return CertStatus{}, false
	}

	port := c.Port
	if port == "" {
		port = defaultTLSPort
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: c.Timeout},
		Config: &tls.Config{
			ServerName: host,
			RootCAs:    c.RootCAs,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		log.DebugContext(ctx, "TLS check failed", "error", err)
		return CertStatus{}, false
	}
	defer func() {
		if cErr := conn.Close(); cErr != nil {
			log.DebugContext(ctx, "Failed to close TLS connection", "error", cErr)
		}
	}()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return CertStatus{}, false
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		log.DebugContext(ctx, "No peer certificates presented")
		return CertStatus{}, false
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	notAfter := certs[0].NotAfter
	return CertStatus{
		NotAfter:   notAfter,
		ExpiryDays: daysUntil(now(), notAfter),
	}, true
}

// daysUntil returns the whole days between now and t, truncated toward zero
func daysUntil(now, t time.Time) int {
	return int(t.Sub(now) / (24 * time.Hour))
}
