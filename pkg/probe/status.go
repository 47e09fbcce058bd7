package probe

// Status classifies the outcome of a single probe
type Status string

const (
	// StatusHealthy means a response with a 2xx status code was received
	StatusHealthy Status = "healthy"
	// StatusHTTPError means a response was received but its status code is outside of 2xx
	StatusHTTPError Status = "http_error"
	// StatusUnreachable means no response could be obtained, e.g. DNS or connection failures
	StatusUnreachable Status = "unreachable"
	// StatusTimeout means the request did not complete within the configured timeout
	StatusTimeout Status = "timeout"
	// StatusError covers every other failure
	StatusError Status = "error"
)

// IsUp reports whether the status counts as up
func (s Status) IsUp() bool {
	return s == StatusHealthy
}

func (s Status) String() string {
	return string(s)
}
