package twitch

import "time"

// AccessToken is an app access token from the client-credentials exchange.
type AccessToken struct {
	Value     string
	ExpiresIn int64
	TokenType string
}

// ClipsResponse mirrors the payload returned by GET /helix/clips.
type ClipsResponse struct {
	Data       []Clip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination carries the cursor for the next page. It is decoded but never followed.
type Pagination struct {
	Cursor string `json:"cursor"`
}

// Clip describes one clip as returned by the API.
type Clip struct {
	ID              string  `json:"id"`
	URL             string  `json:"url"`
	EmbedURL        string  `json:"embed_url"`
	BroadcasterID   string  `json:"broadcaster_id"`
	BroadcasterName string  `json:"broadcaster_name"`
	CreatorID       string  `json:"creator_id"`
	CreatorName     string  `json:"creator_name"`
	VideoID         string  `json:"video_id"`
	GameID          string  `json:"game_id"`
	Language        string  `json:"language"`
	Title           string  `json:"title"`
	ViewCount       int     `json:"view_count"`
	CreatedAt       string  `json:"created_at"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	Duration        float64 `json:"duration"`
	VODOffset       *int    `json:"vod_offset"`
	IsFeatured      bool    `json:"is_featured"`
}

// ParsedCreatedAt returns the CreatedAt timestamp, or the zero time when it
// cannot be parsed.
func (c Clip) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
