// Package types defines the data structures used in the short URL service.
package types

import "time"

// ShortURLResponse represents the response structure for short URL creation.
type ShortURLResponse struct {
	ShortURL  string    `json:"short_url"`
	NativeURL string    `json:"native_url"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortURL represents the internal structure for a generated short URL.
// Key is the storage object key (prefix/suffix); ShortURL is the externally
// reachable form under the distribution host. Nothing is persisted beyond
// the redirect object itself.
type ShortURL struct {
	ShortURL  string
	NativeURL string
	Key       string
	CreatedAt time.Time
}

// ShortURLRequest represents the request structure for creating a short URL.
type ShortURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}
