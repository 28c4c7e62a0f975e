package store

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ulidSource generates strictly increasing ULIDs for non-decreasing
// timestamps. Not safe for concurrent use; BadgerStore holds its write
// lock while calling it.
type ulidSource struct {
	entropy *ulid.MonotonicEntropy
}

func newULIDSource() *ulidSource {
	return &ulidSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (s *ulidSource) New(t time.Time) (ulid.ULID, error) {
	return ulid.New(ulid.Timestamp(t), s.entropy)
}
