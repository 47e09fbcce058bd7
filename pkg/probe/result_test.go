package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResultConstructors(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 15, 123456789, time.FixedZone("CEST", 2*60*60))
	const target = "https://example.com"

	tests := []struct {
		name string
		res  Result
		want Status
	}{
		{name: "healthy with certificate", res: newHealthy(target, at, 200, 12*time.Millisecond, CertStatus{ExpiryDays: 10}, true), want: StatusHealthy},
		{name: "healthy without certificate", res: newHealthy(target, at, 200, 12*time.Millisecond, CertStatus{ExpiryDays: 10}, false), want: StatusHealthy},
		{name: "http error", res: newHTTPError(target, at, 503, httpErrorMessage(503)), want: StatusHTTPError},
		{name: "unreachable", res: newUnreachable(target, at, "URL Error: no such host"), want: StatusUnreachable},
		{name: "timeout", res: newTimeout(target, at), want: StatusTimeout},
		{name: "error", res: newError(target, at, "Unexpected error: boom"), want: StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertInvariants(t, tt.res)
			assert.Equal(t, tt.want, tt.res.Status)
			assert.Equal(t, target, tt.res.URL)
			assert.Equal(t, "2026-10-19T06:30:15.123456Z", tt.res.Timestamp)
		})
	}
}

func TestNewHealthy(t *testing.T) {
	at := time.Now()

	res := newHealthy("https://example.com", at, 200, 1500*time.Microsecond, CertStatus{ExpiryDays: 77}, true)
	assert.Equal(t, 200, *res.HTTPCode)
	assert.InDelta(t, 1.5, *res.ResponseTimeMS, 1e-9)
	assert.True(t, *res.SSLValid)
	assert.Equal(t, 77, *res.SSLExpiryDays)
	assert.Nil(t, res.ErrorMessage)

	res = newHealthy("https://example.com", at, 200, time.Millisecond, CertStatus{}, false)
	assert.Nil(t, res.SSLValid)
	assert.Nil(t, res.SSLExpiryDays)
}

func TestNewHTTPError(t *testing.T) {
	res := newHTTPError("https://example.com", time.Now(), 500, httpErrorMessage(500))

	assert.False(t, res.IsUp)
	assert.Equal(t, 500, *res.HTTPCode)
	assert.Nil(t, res.ResponseTimeMS)
	assert.Equal(t, "HTTP Error: Internal Server Error (Code: 500)", *res.ErrorMessage)
}

func TestNewTimeout(t *testing.T) {
	res := newTimeout("https://example.com", time.Now())

	assert.Equal(t, "Connection timed out", *res.ErrorMessage)
	assert.Nil(t, res.HTTPCode)
	assert.Nil(t, res.ResponseTimeMS)
}

func TestStatus_IsUp(t *testing.T) {
	for _, s := range []Status{StatusHealthy, StatusHTTPError, StatusUnreachable, StatusTimeout, StatusError} {
		assert.Equal(t, s == StatusHealthy, s.IsUp(), "status %s", s)
	}
}
