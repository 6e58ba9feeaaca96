// Package heuristic is a local, best-effort denylist filter that runs before
// the external lookup. It is intentionally high-false-positive: a hit here is
// a heuristic signal, never a confirmed provider verdict.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/willf/bloom"
)

// Category labels heuristic matches so callers can tell them apart from
// provider-reported threat types.
const Category = "HEURISTIC"

type Match struct {
	Rule string
	Term string
}

type rule struct {
	name  string
	terms []string
}

// substringRules match anywhere in the lowercased URL. Terms here are
// distinctive enough that an embedded occurrence is still suspicious.
var substringRules = []rule{
	{
		name:  "malware-terms",
		terms: []string{"malware", "trojan", "ransomware", "spyware", "keylogger", "botnet", "phishing", "rootkit"},
	},
	{
		name:  "adult-terms",
		terms: []string{"porn", "erotik", "hentai", "camgirl"},
	},
	{
		name:  "scam-terms",
		terms: []string{"lottery", "jackpot", "you-won", "claim-prize", "free-money"},
	},
}

// tokenTerms match only as whole URL tokens. These are short words that would
// fire on harmless hosts as substrings ("sex" in essex, "win" in windows).
var tokenTerms = map[string]string{
	"xxx":    "adult-terms",
	"sex":    "adult-terms",
	"adult":  "adult-terms",
	"win":    "scam-terms",
	"winner": "scam-terms",
	"prize":  "scam-terms",
	"casino": "scam-terms",
	"virus":  "malware-terms",
}

// ipv4Host matches a raw dotted-quad host in the authority position.
var ipv4Host = regexp.MustCompile(`^https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}([:/?#]|$)`)

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Scanner scans canonical URLs against the fixed denylist. A bloom filter
// screens tokens before the exact-term map lookup.
type Scanner struct {
	filter *bloom.BloomFilter
}

func NewScanner() *Scanner {
	bf := bloom.New(10000, 5)
	for term := range tokenTerms {
		bf.Add([]byte(term))
	}

	return &Scanner{filter: bf}
}

// Scan returns every denylist rule the lowercased URL matches. Deterministic,
// no I/O.
func (s *Scanner) Scan(canonicalURL string) []Match {
	lower := strings.ToLower(canonicalURL)

	var matches []Match
	seen := make(map[string]struct{})

	for _, r := range substringRules {
		for _, term := range r.terms {
			if strings.Contains(lower, term) {
				matches = appendMatch(matches, seen, r.name, term)
				break
			}
		}
	}

	for _, tok := range tokenSplit.Split(lower, -1) {
		if tok == "" || !s.filter.Test([]byte(tok)) {
			continue
		}
		if name, ok := tokenTerms[tok]; ok {
			matches = appendMatch(matches, seen, name, tok)
		}
	}

	if ipv4Host.MatchString(lower) {
		matches = appendMatch(matches, seen, "ip-host", "")
	}

	return matches
}

func appendMatch(matches []Match, seen map[string]struct{}, name, term string) []Match {
	if _, ok := seen[name]; ok {
		return matches
	}
	seen[name] = struct{}{}

	return append(matches, Match{Rule: name, Term: term})
}
