package tui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/arangotui/arangotui/internal/arango"
)

// describeFetchError turns a gateway failure into an actionable footer message
func describeFetchError(err error) string {
	if err == nil {
		return ""
	}

	var fe *arango.FetchError
	if errors.As(err, &fe) {
		if fe.Status != 0 {
			return describeStatus(fe)
		}
		return "Fetch failed (" + fe.Op + "): " + categorizeTransportError(fe.Err)
	}

	return "Fetch failed: " + categorizeTransportError(err)
}

// describeStatus handles responses that reached the server
func describeStatus(fe *arango.FetchError) string {
	switch {
	case fe.Status == http.StatusUnauthorized:
		return "Authentication failed - check username and password"
	case fe.Status == http.StatusForbidden:
		return "Access denied (" + fe.Op + ") - the user lacks permissions"
	case fe.Status == http.StatusNotFound:
		return "Not found (" + fe.Op + ") - it may have been dropped, press r to refresh"
	case fe.Status >= 500:
		return "Server error (" + fe.Op + "): " + fe.Err.Error()
	case fe.Status >= 200 && fe.Status < 300:
		return "Unexpected response (" + fe.Op + ") - the server sent data that could not be decoded"
	}
	return fe.Error()
}

// categorizeTransportError explains connection-level failures
func categorizeTransportError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout - increase timeout_sec in the profile (default: 30s)"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return "connection timeout - server took too long to respond"
		}
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.ECONNREFUSED:
				return "connection refused - check if ArangoDB is running and the port is correct"
			case syscall.ECONNRESET:
				return "connection reset by server"
			case syscall.ENETUNREACH, syscall.EHOSTUNREACH:
				return "network unreachable - check network connection and firewall settings"
			}
		}
	}

	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "no such host"):
		return "DNS resolution failed - verify the endpoint hostname"
	case strings.Contains(errLower, "connection refused"):
		return "connection refused - check if ArangoDB is running and the port is correct"
	case strings.Contains(errLower, "x509") || strings.Contains(errLower, "certificate"):
		return "TLS certificate rejected - set insecure_skip_verify in the profile to accept it"
	case strings.Contains(errLower, "server gave http response to https client"):
		return "endpoint speaks plain HTTP - use an http:// endpoint"
	case strings.Contains(errLower, "eof"):
		return "connection closed unexpectedly"
	case strings.Contains(errLower, "timeout"):
		return "connection timeout - server took too long to respond"
	}

	return err.Error()
}
