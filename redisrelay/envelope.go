package redisrelay

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire format carried over the Redis channel. The payload is
// kept as raw JSON so the receiving side can decode it into its own value
// type; Origin identifies the relay that published it and is used to drop
// the publisher's own echo.
type Envelope struct {
	ID          string          `json:"id"`
	Origin      string          `json:"origin"`
	Payload     json.RawMessage `json:"payload"`
	PublishedAt time.Time       `json:"published_at"`
}

// newEnvelope wraps an already-marshaled payload with relay metadata.
func newEnvelope(origin string, payload []byte) Envelope {
	return Envelope{
		ID:          uuid.New().String(),
		Origin:      origin,
		Payload:     payload,
		PublishedAt: time.Now().UTC(),
	}
}
