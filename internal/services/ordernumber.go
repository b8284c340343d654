package services

import (
	"crypto/rand"
	"fmt"
	"time"
)

// orderNumberAlphabet deliberately omits characters that are easy to
// confuse when read over the phone (0/O, 1/I/L).
const orderNumberAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const orderNumberSuffixLen = 5

// OrderNumberGenerator produces human-readable order references such as
// NB-20250501-A1B2C: a fixed prefix, the order date, and a short random
// suffix. Collisions within a day are possible and handled by retrying
// the insert, not by the generator.
type OrderNumberGenerator struct {
	prefix string
	clock  func() time.Time
}

func NewOrderNumberGenerator(prefix string, clock func() time.Time) *OrderNumberGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &OrderNumberGenerator{prefix: prefix, clock: clock}
}

// Next returns a fresh order number. Safe for concurrent use.
func (g *OrderNumberGenerator) Next() (string, error) {
	buf := make([]byte, orderNumberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("services: generate order number: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", g.prefix, g.clock().Format("20060102"), string(buf)), nil
}
