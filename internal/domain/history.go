package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// InvocationRecord captures one run of the tool for the local history log.
type InvocationRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Mode       Mode      `json:"mode"`
	Query      string    `json:"query"`
	Model      string    `json:"model"`
	Path       string    `json:"path,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Additions  int       `json:"additions"`
	Deletions  int       `json:"deletions"`
	Applied    bool      `json:"applied"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// CacheEntry stores cached provider responses.
type CacheEntry struct {
	Key       string    `json:"key"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// CacheKey derives the cache key for a completion. Parts are NUL-separated so
// shifting text between fields changes the key.
func CacheKey(model string, mode Mode, system, prompt string) string {
	h := sha256.New()
	for _, part := range []string{model, string(mode), system, prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
