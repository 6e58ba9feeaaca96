package service

import (
	"errors"
	"fmt"

	"urlguard/internal/metrics"
	"urlguard/internal/safebrowsing"
)

// lookupReason maps a classified lookup failure to the message shown to the
// user. Each error kind gets its own wording so operators can tell a network
// problem from a credential problem from throttling.
func lookupReason(err error) string {
	var lerr *safebrowsing.LookupError
	if !errors.As(err, &lerr) {
		metrics.LookupErrors.WithLabelValues(string(safebrowsing.KindOther)).Inc()

		return fmt.Sprintf("threat lookup failed: %s", err)
	}

	metrics.LookupErrors.WithLabelValues(string(lerr.Kind)).Inc()

	switch lerr.Kind {
	case safebrowsing.KindNetworkUnavailable:
		return "threat service unreachable, check the connection and try again"
	case safebrowsing.KindRateLimited:
		return "threat service rate limit reached, try again later"
	case safebrowsing.KindServiceRejected:
		return fmt.Sprintf("threat service rejected the request (status %d), verify the API credential", lerr.StatusCode)
	case safebrowsing.KindMalformedResponse:
		return "threat service returned an unreadable response"
	default:
		return fmt.Sprintf("threat lookup failed: %s", lerr)
	}
}
