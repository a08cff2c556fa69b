package pathid

import (
	"time"

	"github.com/google/uuid"
)

// NewUUID generates an RFC-4122 v4 identifier, 36 characters, hyphenated.
func NewUUID() string {
	return uuid.New().String()
}

// NowMillis returns the current wall-clock UTC time in milliseconds since
// the Unix epoch.
func NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
