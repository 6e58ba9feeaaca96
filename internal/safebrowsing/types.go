// Package safebrowsing implements the threat-query wire contract of the
// Safe Browsing v4 threatMatches:find endpoint.
package safebrowsing

// Threat types this deployment always asks about.
const (
	ThreatMalware               = "MALWARE"
	ThreatSocialEngineering     = "SOCIAL_ENGINEERING"
	ThreatUnwantedSoftware      = "UNWANTED_SOFTWARE"
	ThreatPotentiallyHarmfulApp = "POTENTIALLY_HARMFUL_APPLICATION"
)

type Query struct {
	Client     ClientInfo `json:"client"`
	ThreatInfo ThreatInfo `json:"threatInfo"`
}

type ClientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type ThreatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []ThreatEntry `json:"threatEntries"`
}

type ThreatEntry struct {
	URL string `json:"url"`
}

// Result is the provider's response. A missing or empty matches field means
// no known threats.
type Result struct {
	Matches []Match `json:"matches"`
}

type Match struct {
	ThreatType   string       `json:"threatType"`
	PlatformType string       `json:"platformType,omitempty"`
	Threat       *ThreatEntry `json:"threat,omitempty"`
}

// NewQuery builds the outbound request for a single canonical URL: the four
// fixed threat categories, any platform, URL entries.
func NewQuery(clientID, clientVersion, canonicalURL string) Query {
	return Query{
		Client: ClientInfo{
			ClientID:      clientID,
			ClientVersion: clientVersion,
		},
		ThreatInfo: ThreatInfo{
			ThreatTypes: []string{
				ThreatMalware,
				ThreatSocialEngineering,
				ThreatUnwantedSoftware,
				ThreatPotentiallyHarmfulApp,
			},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []ThreatEntry{{URL: canonicalURL}},
		},
	}
}
