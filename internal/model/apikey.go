package model

import "time"

// APIKeySet holds the external API keys a user has registered. Keys are
// stored against an iterated hash of the user id, never the raw id.
type APIKeySet struct {
	UserHash    string    `json:"-"`
	YouTubeKey  string    `json:"youtubeKey,omitempty"`
	GeminiKey   string    `json:"geminiKey,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Masked returns a copy safe for API responses: key material is replaced
// with a suffix-only preview.
func (k *APIKeySet) Masked() *APIKeySet {
	return &APIKeySet{
		YouTubeKey:  maskKey(k.YouTubeKey),
		GeminiKey:   maskKey(k.GeminiKey),
		LastUpdated: k.LastUpdated,
	}
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
