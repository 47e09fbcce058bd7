package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

// timeoutErr is a net.Error reporting a timeout
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus Status
		wantMsg    string
	}{
		{
			name:       "context deadline",
			err:        &url.Error{Op: "Get", URL: "https://a.b", Err: context.DeadlineExceeded},
			wantStatus: StatusTimeout,
			wantMsg:    "Connection timed out",
		},
		{
			name:       "net timeout inside op error",
			err:        &url.Error{Op: "Get", URL: "https://a.b", Err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}},
			wantStatus: StatusTimeout,
			wantMsg:    "Connection timed out",
		},
		{
			name:       "dns error",
			err:        &url.Error{Op: "Get", URL: "https://a.b", Err: &net.DNSError{Err: "no such host", Name: "a.b"}},
			wantStatus: StatusUnreachable,
			wantMsg:    "URL Error: lookup a.b: no such host",
		},
		{
			name:       "bare op error",
			err:        &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantStatus: StatusUnreachable,
			wantMsg:    "URL Error: dial tcp: connection refused",
		},
		{
			name:       "generic transport error",
			err:        &url.Error{Op: "Get", URL: "https://a.b", Err: errors.New("tls: handshake failure")},
			wantStatus: StatusUnreachable,
			wantMsg:    "URL Error: tls: handshake failure",
		},
		{
			name:       "canceled",
			err:        &url.Error{Op: "Get", URL: "https://a.b", Err: context.Canceled},
			wantStatus: StatusError,
			wantMsg:    "Unexpected error: context canceled",
		},
		{
			name:       "anything else",
			err:        fmt.Errorf("wrapped: %w", errors.New("boom")),
			wantStatus: StatusError,
			wantMsg:    "Unexpected error: wrapped: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classify(tt.err)
			if status != tt.wantStatus {
				t.Errorf("classify() status = %v, want %v", status, tt.wantStatus)
			}
			if msg != tt.wantMsg {
				t.Errorf("classify() message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestIsSuccess(t *testing.T) {
	for code, want := range map[int]bool{
		199: false,
		200: true,
		201: true,
		299: true,
		300: false,
		301: false,
		404: false,
		500: false,
	} {
		if got := isSuccess(code); got != want {
			t.Errorf("isSuccess(%d) = %v, want %v", code, got, want)
		}
	}
}
