// Package normalize turns raw user text into a canonical absolute URL.
package normalize

import (
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrEmpty     = errors.New("empty")
	ErrMalformed = errors.New("malformed")
)

var (
	dottedQuad = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	domainName = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// Normalize trims raw input, prepends https:// when no http(s) scheme is
// present, and validates the result as an absolute URL. The scheme default is
// a usability affordance, not a security judgment. Pure and deterministic.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrMalformed
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrMalformed
	}

	if u.User != nil || u.Host == "" || !validHost(u.Hostname()) {
		return "", ErrMalformed
	}

	u.Host = strings.ToLower(u.Host)

	return u.String(), nil
}

// validHost accepts domain names and dotted IPv4 literals. Dotted-quad hosts
// with out-of-range octets (e.g. 256.256.256.256) are rejected.
func validHost(host string) bool {
	if host == "" {
		return false
	}

	if dottedQuad.MatchString(host) {
		return net.ParseIP(host) != nil
	}

	return domainName.MatchString(host)
}
