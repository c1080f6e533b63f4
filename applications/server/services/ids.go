package services

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// randomSuffix returns n lower-case characters from the random component of a
// fresh ULID. n is capped at 16. Entropy is not monotonic, so suffixes drawn
// within the same millisecond are independent.
func randomSuffix(now time.Time, n int) string {
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader)
	random := strings.ToLower(id.String()[10:])
	if n < len(random) {
		random = random[len(random)-n:]
	}

	return random
}

func newBlobKey(now time.Time, ext string) string {
	return fmt.Sprintf("product-%d-%s.%s", now.UnixMilli(), randomSuffix(now, 9), ext)
}

func newProductID(now time.Time) string {
	return fmt.Sprintf("prod_%d_%s", now.UnixMilli(), randomSuffix(now, 9))
}
