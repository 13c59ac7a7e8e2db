// Package annotations holds measurement annotations drawn on series frames
// and their sqlite-backed persistence.
package annotations

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Annotation is a single measurement placed on a frame. The two canvas
// points are the measurement endpoints in frame coordinates; for point-like
// tools the second point equals the first.
type Annotation struct {
	ID        string
	Series    string
	Frame     int
	Label     string
	Tool      string
	Value     float64
	Unit      string
	X1, Y1    float64
	X2, Y2    float64
	CreatedAt time.Time
}

// NewID returns a fresh sortable annotation id.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
