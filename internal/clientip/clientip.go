// Package clientip derives a client IP address from proxy headers.
//
// Headers are untrusted input; anything that does not parse as a plain
// IPv4 or IPv6 literal is discarded rather than stored as a placeholder.
// The IPv6 check accepts only fully expanded literals (eight colon-separated
// groups of 1-4 hex digits). The "::" zero-compression shorthand is not
// recognized; known limitation inherited from the validation contract.
package clientip

import (
	"net/http"
	"strings"
)

// Header names set by the reverse proxy in front of the service.
const (
	ForwardedForHeader = "X-Forwarded-For"
	RealIPHeader       = "X-Real-IP"
)

// FromRequest extracts a validated client IP from the request's proxy
// headers. Returns "" when no valid IP is present.
func FromRequest(r *http.Request) string {
	return FromHeaders(r.Header.Get(ForwardedForHeader), r.Header.Get(RealIPHeader))
}

// FromHeaders picks the first comma-separated token of forwardedFor, falls
// back to realIP, and validates the result. Returns "" on anything
// malformed or absent. Never fails.
func FromHeaders(forwardedFor, realIP string) string {
	ip := firstForwarded(forwardedFor)
	if ip == "" {
		ip = strings.TrimSpace(realIP)
	}
	if ip == "" || !IsValid(ip) {
		return ""
	}
	return ip
}

// firstForwarded returns the first comma-separated token, trimmed.
func firstForwarded(value string) string {
	if value == "" {
		return ""
	}
	if i := strings.IndexByte(value, ','); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}

// IsValid reports whether s is a syntactically valid IPv4 or IPv6 literal.
func IsValid(s string) bool {
	return isIPv4(s) || isIPv6(s)
}

// isIPv4 accepts four dot-separated decimal octets, each in [0, 255].
func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		n := 0
		for i := 0; i < len(part); i++ {
			c := part[i]
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

// isIPv6 accepts exactly eight colon-separated groups of 1-4 hex digits.
func isIPv6(s string) bool {
	groups := strings.Split(s, ":")
	if len(groups) != 8 {
		return false
	}
	for _, group := range groups {
		if len(group) == 0 || len(group) > 4 {
			return false
		}
		for i := 0; i < len(group); i++ {
			c := group[i]
			if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
				continue
			}
			return false
		}
	}
	return true
}
