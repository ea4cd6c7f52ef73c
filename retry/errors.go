package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	ai "github.com/spetersoncode/postpilot"
)

// statusCoder is an interface for errors that have an HTTP status code.
// Both the Anthropic and OpenAI SDK errors implement this interface.
type statusCoder interface {
	StatusCode() int
}

// IsTransient determines if an error is transient and should be retried.
// It first checks if the error implements postpilot.CategorizedError for
// explicit categorization. If not, it falls back to heuristic detection:
// rate limits (HTTP 429), server errors (HTTP 5xx), network timeouts,
// connection resets, and DNS failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce ai.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ai.ErrorTransient
	}

	// Fall back to heuristic detection for uncategorized errors

	// API errors with status codes (works with Anthropic/OpenAI SDKs)
	var sc statusCoder
	if errors.As(err, &sc) {
		if isTransientStatusCode(sc.StatusCode()) {
			return true
		}
	}

	// Google API errors carry the code in the message, not a StatusCode method
	if code := extractGoogleAPIErrorCode(err); code > 0 {
		if isTransientStatusCode(code) {
			return true
		}
	}

	return isTransientNetworkError(err)
}

// isTransientStatusCode checks if an HTTP status code indicates a transient error.
func isTransientStatusCode(code int) bool {
	if code == 429 {
		return true
	}
	return code >= 500 && code < 600
}

// extractGoogleAPIErrorCode extracts the status code from a Google API error
// message pattern such as "googleapi: Error 429:".
func extractGoogleAPIErrorCode(err error) int {
	errStr := err.Error()
	if !strings.Contains(errStr, "googleapi:") {
		return 0
	}
	for _, code := range []struct {
		pattern string
		code    int
	}{
		{"Error 429", 429},
		{"Error 500", 500},
		{"Error 502", 502},
		{"Error 503", 503},
		{"Error 504", 504},
	} {
		if strings.Contains(errStr, code.pattern) {
			return code.code
		}
	}
	return 0
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporarily unavailable",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
