// Package twitch provides the HTTP client for the Twitch endpoints the
// renamer depends on.
//
// # Overview
//
// Two calls are made per run, each exactly once:
//
//   - POST <token_url>: client-credentials exchange for an app access token
//   - GET <clips_url>?id=a&id=b: batched clip metadata lookup
//
// The token exchange goes through golang.org/x/oauth2/clientcredentials with
// the credentials carried in the form body. The clips lookup authenticates
// with oauth2.Transport over a static token source and adds the Client-Id
// header Helix requires.
//
// # Error Handling
//
// Any non-2xx response is returned as *RequestError with Op set to "token"
// or "clips", the status code and the status text. Nothing is retried.
// Transport and decoding failures are wrapped with fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "clips request returned status 401 Unauthorized: {...}"
//   - "decode response: unexpected end of JSON input"
//
// # Pagination
//
// Only the first page's data is returned. The cursor in Pagination is
// decoded so callers can see that more results exist, but it is not
// followed.
package twitch
