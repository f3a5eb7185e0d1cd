package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 8
	defaultRefPrefix  = "FL"
)

// ReferenceGenerator produces booking reference candidates. Uniqueness is
// enforced by the passengers table, not the generator; the service retries on
// a duplicate.
type ReferenceGenerator interface {
	Generate() (string, error)
}

type RandomReferenceGenerator struct {
	prefix string
}

func NewReferenceGenerator(prefix string) *RandomReferenceGenerator {
	if prefix == "" {
		prefix = defaultRefPrefix
	}
	return &RandomReferenceGenerator{prefix: prefix}
}

func (g *RandomReferenceGenerator) Generate() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return g.prefix + string(buf), nil
}

var _ ReferenceGenerator = (*RandomReferenceGenerator)(nil)
