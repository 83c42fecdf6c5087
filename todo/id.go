package todo

import (
	"time"

	"github.com/tasknest/tasknest/internal/ids"
)

// GenerateID creates a unique 8-character identifier derived from a seed
// string and timestamp.
func GenerateID(seed string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(seed, timestamp, ids.DefaultLength)
}
