package pin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		code := g.Generate()
		assert.Len(t, code, DefaultLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected symbol %q in %s", r, code)
		}
	}
}

func TestGenerateUnique_FirstCandidateFree(t *testing.T) {
	g := NewGeneratorWith(6, 10, time.Millisecond)

	calls := 0
	code := g.GenerateUnique(context.Background(), func(ctx context.Context, pin string) (bool, error) {
		calls++
		return false, nil
	})

	assert.Len(t, code, 6)
	assert.Equal(t, 1, calls)
}

func TestGenerateUnique_RetriesOnTaken(t *testing.T) {
	g := NewGeneratorWith(6, 10, time.Millisecond)

	calls := 0
	code := g.GenerateUnique(context.Background(), func(ctx context.Context, pin string) (bool, error) {
		calls++
		return calls < 3, nil
	})

	assert.Len(t, code, 6)
	assert.Equal(t, 3, calls)
}

func TestGenerateUnique_TotalAfterBound(t *testing.T) {
	// Every candidate reported taken: the last one is returned anyway.
	g := NewGeneratorWith(6, 10, time.Millisecond)

	calls := 0
	code := g.GenerateUnique(context.Background(), func(ctx context.Context, pin string) (bool, error) {
		calls++
		return true, nil
	})

	assert.Len(t, code, 6)
	assert.Equal(t, 10, calls)
}

func TestGenerateUnique_ExistsErrorCountsAsTaken(t *testing.T) {
	// A failing uniqueness check must retry, never confirm the candidate.
	g := NewGeneratorWith(6, 10, time.Millisecond)

	calls := 0
	code := g.GenerateUnique(context.Background(), func(ctx context.Context, pin string) (bool, error) {
		calls++
		if calls < 4 {
			return false, errors.New("store unavailable")
		}
		return false, nil
	})

	assert.Len(t, code, 6)
	assert.Equal(t, 4, calls)
}

func TestGenerateUnique_ContextCancelReturnsCandidate(t *testing.T) {
	g := NewGeneratorWith(6, 10, time.Hour) // delay would block without cancellation

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan string, 1)
	go func() {
		done <- g.GenerateUnique(ctx, func(ctx context.Context, pin string) (bool, error) {
			return true, nil
		})
	}()

	select {
	case code := <-done:
		assert.Len(t, code, 6)
	case <-time.After(2 * time.Second):
		t.Fatal("GenerateUnique blocked despite cancelled context")
	}
}

func TestGenerateUnique_CustomLength(t *testing.T) {
	g := NewGeneratorWith(8, 10, time.Millisecond)

	code := g.GenerateUnique(context.Background(), func(ctx context.Context, pin string) (bool, error) {
		return false, nil
	})

	assert.Len(t, code, 8)
}
