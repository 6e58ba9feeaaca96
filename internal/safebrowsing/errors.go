package safebrowsing

import "fmt"

// Kind classifies a failed lookup.
type Kind string

const (
	KindNetworkUnavailable Kind = "network_unavailable"
	KindServiceRejected    Kind = "service_rejected"
	KindRateLimited        Kind = "rate_limited"
	KindMalformedResponse  Kind = "malformed_response"
	KindOther              Kind = "other"
)

// LookupError is a classified lookup failure. StatusCode is set for
// KindServiceRejected and KindRateLimited.
type LookupError struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindServiceRejected, KindRateLimited:
		return fmt.Sprintf("lookup %s: status %d", e.Kind, e.StatusCode)
	default:
		return fmt.Sprintf("lookup %s: %v", e.Kind, e.Err)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }
