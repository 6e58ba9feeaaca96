package models

// Verdict is the classification of a URL after one check cycle. It is
// recomputed fully on every check and never merged with a prior verdict.
type Verdict string

const (
	VerdictIdle    Verdict = "idle"
	VerdictPending Verdict = "pending"
	VerdictSafe    Verdict = "safe"
	VerdictUnsafe  Verdict = "unsafe"
	VerdictInvalid Verdict = "invalid"
	VerdictUnknown Verdict = "unknown"
)

// Terminal reports whether v ends a check cycle.
func (v Verdict) Terminal() bool {
	switch v {
	case VerdictSafe, VerdictUnsafe, VerdictInvalid, VerdictUnknown:
		return true
	}
	return false
}

type Check struct {
	ID           string   `json:"id"`
	Verdict      Verdict  `json:"verdict"`
	URL          string   `json:"url"`
	CanonicalURL string   `json:"canonical_url,omitempty"`
	Threats      []string `json:"threats,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

type CheckResponse struct {
	Check           *Check   `json:"check"`
	ActiveChecks    []string `json:"active_checks"`
	CompletedChecks []string `json:"completed_checks"`
}

type CheckRequest struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Request string `json:"request"`
	Error   string `json:"error"`
}

// StateChange is pushed to subscribers on every verdict transition so a
// presentation layer can render progress without polling.
type StateChange struct {
	CheckID string   `json:"check_id"`
	Verdict Verdict  `json:"verdict"`
	Threats []string `json:"threats,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}
