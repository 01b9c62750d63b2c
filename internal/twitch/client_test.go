package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(server.URL+"/oauth2/token", server.URL+"/helix/clips", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestNewClient_RejectsBadEndpoints(t *testing.T) {
	if _, err := NewClient("", "https://api.example.com/clips", 0); err == nil {
		t.Fatalf("NewClient with empty token URL returned nil error")
	}
	if _, err := NewClient("https://id.example.com/token", "/relative", 0); err == nil {
		t.Fatalf("NewClient with relative clips URL returned nil error")
	}
}

func TestFetchToken_SendsClientCredentialsForm(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/oauth2/token" {
			http.NotFound(w, r)
			return
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotForm = map[string]string{
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"grant_type":    r.PostForm.Get("grant_type"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":5011271,"token_type":"bearer"}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server)
	tok, err := c.FetchToken(context.Background(), "my-id", "my-secret")
	if err != nil {
		t.Fatalf("FetchToken returned error: %v", err)
	}
	if tok.Value != "tok-123" || tok.TokenType != "bearer" {
		t.Fatalf("token = %#v, want tok-123/bearer", tok)
	}
	if tok.ExpiresIn < 5011200 || tok.ExpiresIn > 5011271 {
		t.Fatalf("ExpiresIn = %d, want about 5011271", tok.ExpiresIn)
	}
	if !strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded") {
		t.Fatalf("Content-Type = %q, want form encoding", gotContentType)
	}
	want := map[string]string{"client_id": "my-id", "client_secret": "my-secret", "grant_type": "client_credentials"}
	if !reflect.DeepEqual(gotForm, want) {
		t.Fatalf("form = %v, want %v", gotForm, want)
	}
}

func TestFetchToken_NonSuccessIsRequestError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status":403,"message":"invalid client secret"}`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server).FetchToken(context.Background(), "id", "bad")
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("FetchToken error = %v, want *RequestError", err)
	}
	if rerr.Op != "token" || rerr.StatusCode != http.StatusForbidden {
		t.Fatalf("RequestError = %#v, want token/403", rerr)
	}
	if !strings.Contains(err.Error(), "403 Forbidden") {
		t.Fatalf("error = %q, want status text", err.Error())
	}
}

func TestFetchClips_EmptyIDsSkipsNetwork(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	clips, err := newTestClient(t, server).FetchClips(context.Background(), "id", AccessToken{Value: "t"}, nil)
	if err != nil {
		t.Fatalf("FetchClips returned error: %v", err)
	}
	if clips == nil || len(clips) != 0 {
		t.Fatalf("FetchClips = %#v, want empty non-nil slice", clips)
	}
	if calls != 0 {
		t.Fatalf("server saw %d requests, want 0", calls)
	}
}

func TestFetchClips_BatchesIDsWithHeaders(t *testing.T) {
	t.Parallel()

	var gotIDs []string
	var gotAuth, gotClientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/helix/clips" {
			http.NotFound(w, r)
			return
		}
		gotIDs = r.URL.Query()["id"]
		gotAuth = r.Header.Get("Authorization")
		gotClientID = r.Header.Get("Client-Id")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ClipsResponse{
			Data: []Clip{
				{ID: "abc123", Title: "Cool Play", CreatedAt: "2023-06-15T14:05:00Z"},
				{ID: "def456", Title: "Other"},
			},
			Pagination: Pagination{Cursor: "next-page"},
		})
	}))
	t.Cleanup(server.Close)

	clips, err := newTestClient(t, server).FetchClips(context.Background(), "my-id",
		AccessToken{Value: "tok-123", TokenType: "bearer"}, []string{"abc123", "def456", "abc123"})
	if err != nil {
		t.Fatalf("FetchClips returned error: %v", err)
	}
	if !reflect.DeepEqual(gotIDs, []string{"abc123", "def456", "abc123"}) {
		t.Fatalf("id params = %v, want duplicates preserved in order", gotIDs)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotClientID != "my-id" {
		t.Fatalf("Client-Id = %q, want %q", gotClientID, "my-id")
	}
	if len(clips) != 2 || clips[0].Title != "Cool Play" {
		t.Fatalf("clips = %#v, want 2 clips", clips)
	}
	want := time.Date(2023, 6, 15, 14, 5, 0, 0, time.UTC)
	if got := clips[0].ParsedCreatedAt(); !got.Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", got, want)
	}
}

func TestFetchClips_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "denied" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server)
	_, err := c.FetchClips(context.Background(), "id", AccessToken{Value: "t"}, []string{"denied"})
	var rerr *RequestError
	if !errors.As(err, &rerr) || rerr.Op != "clips" || rerr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("FetchClips error = %v, want clips/401 RequestError", err)
	}

	_, err = c.FetchClips(context.Background(), "id", AccessToken{Value: "t"}, []string{"garbled"})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchClips error = %v, want decode response error", err)
	}
}

func TestParsedCreatedAt_InvalidIsZero(t *testing.T) {
	if got := (Clip{CreatedAt: "yesterday"}).ParsedCreatedAt(); !got.IsZero() {
		t.Fatalf("ParsedCreatedAt = %v, want zero", got)
	}
}
