package pin

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Alphabet is the symbol set retrieval codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	DefaultLength   = 6
	DefaultAttempts = 10
	DefaultDelay    = 100 * time.Millisecond
)

// ExistsFunc reports whether a live record already uses the given pin.
// An error is treated the same as "taken": the generator retries rather
// than risking a known collision.
type ExistsFunc func(ctx context.Context, pin string) (bool, error)

// Generator produces short retrieval codes.
//
// Uniqueness is probabilistic, not guaranteed: GenerateUnique checks each
// candidate against the store for a bounded number of attempts and then
// returns the last candidate regardless. Callers rely on the operation
// being total - it never fails and never blocks past the attempt bound.
type Generator struct {
	length   int
	attempts int
	delay    time.Duration
}

func NewGenerator() *Generator {
	return NewGeneratorWith(DefaultLength, DefaultAttempts, DefaultDelay)
}

func NewGeneratorWith(length, attempts int, delay time.Duration) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Generator{length: length, attempts: attempts, delay: delay}
}

// Generate draws a single random candidate from the alphabet.
func (g *Generator) Generate() string {
	var sb strings.Builder
	sb.Grow(g.length)
	for i := 0; i < g.length; i++ {
		sb.WriteByte(Alphabet[rand.Intn(len(Alphabet))])
	}
	return sb.String()
}

// GenerateUnique returns a candidate confirmed free by exists, retrying up
// to the attempt bound with a short pause between attempts. If no candidate
// is confirmed within the bound, or the context is cancelled, the last
// candidate is returned anyway.
func (g *Generator) GenerateUnique(ctx context.Context, exists ExistsFunc) string {
	candidate := g.Generate()
	for attempt := 0; attempt < g.attempts; attempt++ {
		if attempt > 0 {
			candidate = g.Generate()
		}
		taken, err := exists(ctx, candidate)
		if err == nil && !taken {
			return candidate
		}
		select {
		case <-ctx.Done():
			return candidate
		case <-time.After(g.delay):
		}
	}
	return candidate
}
