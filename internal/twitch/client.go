package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClipFetcher defines the API surface the rename pipeline needs.
// This interface is implemented by *Client and can be used for testing.
type ClipFetcher interface {
	FetchToken(ctx context.Context, clientID, clientSecret string) (AccessToken, error)
	FetchClips(ctx context.Context, clientID string, token AccessToken, ids []string) ([]Clip, error)
}

// Ensure Client implements ClipFetcher at compile time.
var _ ClipFetcher = (*Client)(nil)

// Client talks to the Twitch OAuth and Helix endpoints.
type Client struct {
	tokenURL  string
	clipsURL  *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "cliprename/0.1"
	defaultTimeout   = 30 * time.Second
	errorBodyLimit   = 512
)

// RequestError reports a non-2xx response. Op is "token" or "clips".
type RequestError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s request returned status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// NewClient builds a Client for the given endpoints. A non-positive timeout
// uses the default.
func NewClient(tokenURL, clipsURL string, timeout time.Duration) (*Client, error) {
	if _, err := parseEndpoint(tokenURL); err != nil {
		return nil, err
	}
	clips, err := parseEndpoint(clipsURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		tokenURL:  strings.TrimSpace(tokenURL),
		clipsURL:  clips,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchToken exchanges the application credentials for an app access token
// using the client-credentials grant. Credentials travel in the form body.
func (c *Client) FetchToken(ctx context.Context, clientID, clientSecret string) (AccessToken, error) {
	if c == nil {
		return AccessToken{}, fmt.Errorf("client is nil")
	}
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := cc.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return AccessToken{}, &RequestError{
				Op:         "token",
				StatusCode: rerr.Response.StatusCode,
				Status:     rerr.Response.Status,
				Body:       truncate(string(rerr.Body)),
			}
		}
		return AccessToken{}, fmt.Errorf("token request: %w", err)
	}

	expiresIn := tok.ExpiresIn
	if expiresIn == 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(time.Until(tok.Expiry).Round(time.Second) / time.Second)
	}
	return AccessToken{Value: tok.AccessToken, ExpiresIn: expiresIn, TokenType: tok.TokenType}, nil
}

// FetchClips looks up all ids in a single request. Duplicates are sent as-is
// and only the first page of results is returned. An empty id list returns
// an empty slice without touching the network.
func (c *Client) FetchClips(ctx context.Context, clientID string, token AccessToken, ids []string) ([]Clip, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return []Clip{}, nil
	}

	values := url.Values{}
	for _, id := range ids {
		values.Add("id", id)
	}
	reqURL := *c.clipsURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Client-Id", clientID)

	authed := &http.Client{
		Timeout: c.http.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value, TokenType: token.TokenType}),
			Base:   c.http.Transport,
		},
	}
	resp, err := authed.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &RequestError{
			Op:         "clips",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var payload ClipsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Data == nil {
		return []Clip{}, nil
	}
	return payload.Data, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func truncate(s string) string {
	if len(s) > errorBodyLimit {
		return s[:errorBodyLimit]
	}
	return s
}
