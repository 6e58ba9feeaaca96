package safebrowsing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"urlguard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestClient(endpoint string) *Client {
	return NewClient(config.Lookup{
		Endpoint:      endpoint,
		APIKey:        "test-key",
		ClientID:      "urlguard",
		ClientVersion: "1.0.0",
		Timeout:       2 * time.Second,
	}, testLogger())
}

func TestClient_Lookup_RequestShape(t *testing.T) {
	var gotQuery Query
	var gotKey, gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotQuery))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.Lookup(context.Background(), NewQuery("urlguard", "1.0.0", "https://example.com"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "urlguard", gotQuery.Client.ClientID)
	assert.Equal(t, "1.0.0", gotQuery.Client.ClientVersion)
	assert.Equal(t,
		[]string{ThreatMalware, ThreatSocialEngineering, ThreatUnwantedSoftware, ThreatPotentiallyHarmfulApp},
		gotQuery.ThreatInfo.ThreatTypes)
	assert.Equal(t, []string{"ANY_PLATFORM"}, gotQuery.ThreatInfo.PlatformTypes)
	assert.Equal(t, []string{"URL"}, gotQuery.ThreatInfo.ThreatEntryTypes)
	require.Len(t, gotQuery.ThreatInfo.ThreatEntries, 1)
	assert.Equal(t, "https://example.com", gotQuery.ThreatInfo.ThreatEntries[0].URL)
}

func TestClient_Lookup_Matches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[{"threatType":"MALWARE","platformType":"ANY_PLATFORM","threat":{"url":"https://bad.test"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	res, err := c.Lookup(context.Background(), NewQuery("urlguard", "1.0.0", "https://bad.test"))
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, ThreatMalware, res.Matches[0].ThreatType)
}

func TestClient_Lookup_NoMatchesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	res, err := c.Lookup(context.Background(), NewQuery("urlguard", "1.0.0", "https://good.test"))
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestClient_Lookup_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantStatus int
	}{
		{
			name:       "authorization failure",
			status:     http.StatusForbidden,
			body:       `{"error":{"message":"API key not valid"}}`,
			wantKind:   KindServiceRejected,
			wantStatus: 403,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       ``,
			wantKind:   KindRateLimited,
			wantStatus: 429,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       ``,
			wantKind:   KindServiceRejected,
			wantStatus: 500,
		},
		{
			name:     "unparsable success body",
			status:   http.StatusOK,
			body:     `not json at all`,
			wantKind: KindMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)

			_, err := c.Lookup(context.Background(), NewQuery("urlguard", "1.0.0", "https://example.com"))
			require.Error(t, err)

			var lerr *LookupError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.wantKind, lerr.Kind)
			assert.Equal(t, tt.wantStatus, lerr.StatusCode)
		})
	}
}

func TestClient_Lookup_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c := newTestClient(endpoint)

	_, err := c.Lookup(context.Background(), NewQuery("urlguard", "1.0.0", "https://example.com"))
	require.Error(t, err)

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindNetworkUnavailable, lerr.Kind)
}
