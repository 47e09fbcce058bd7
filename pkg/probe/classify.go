package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

const timeoutMessage = "Connection timed out"

// classify maps an error of the primary request onto a failure status
// and the message reported with it. Timeouts are checked first because
// the http client wraps them into *url.Error and *net.OpError as well.
func classify(err error) (Status, string) {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return StatusTimeout, timeoutMessage
	}
	if errors.Is(err, context.Canceled) {
		return StatusError, fmt.Sprintf("Unexpected error: %v", context.Canceled)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return StatusUnreachable, fmt.Sprintf("URL Error: %v", urlErr.Err)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return StatusUnreachable, fmt.Sprintf("URL Error: %v", err)
	}

	return StatusError, fmt.Sprintf("Unexpected error: %v", err)
}

// isSuccess reports whether the status code counts as healthy
func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// httpErrorMessage formats the message of a non 2xx response
func httpErrorMessage(code int) string {
	reason := http.StatusText(code)
	if reason == "" {
		reason = "Unknown Status"
	}
	return fmt.Sprintf("HTTP Error: %s (Code: %d)", reason, code)
}
