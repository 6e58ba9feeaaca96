package safebrowsing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"urlguard/internal/config"
)

type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *slog.Logger
}

func NewClient(cfg config.Lookup, log *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Lookup submits a threat query and classifies the outcome. The HTTP status
// is classified before any response field is read.
func (c *Client) Lookup(ctx context.Context, query Query) (*Result, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, &LookupError{Kind: KindOther, Err: err}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &LookupError{Kind: KindOther, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &LookupError{Kind: KindNetworkUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		drain(resp.Body)
		return nil, &LookupError{Kind: KindRateLimited, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warn("lookup rejected", slog.Int("status", resp.StatusCode))
		drain(resp.Body)
		return nil, &LookupError{Kind: KindServiceRejected, StatusCode: resp.StatusCode}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &LookupError{Kind: KindMalformedResponse, Err: err}
	}

	return &result, nil
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 4096))
}
