package memory

import (
	"testing"

	"tg-assist-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get(42)
	assert.False(t, found)

	sess := store.NewSession(42, "/sendmsg", store.StateAwaitingRecipient)
	repo.Save(sess)

	got, found := repo.Get(42)
	assert.True(t, found)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "/sendmsg", got.Command)
	assert.Equal(t, store.StateAwaitingRecipient, got.State)

	repo.Delete(42)
	_, found = repo.Get(42)
	assert.False(t, found)
}

func TestSessionRepository_DeleteMissingIsNoop(t *testing.T) {
	repo := NewSessionRepository()
	repo.Delete(999) // must not panic
	_, found := repo.Get(999)
	assert.False(t, found)
}

func TestSessionRepository_DistinctChats(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(store.NewSession(1, "/sendmsg", store.StateAwaitingRecipient))
	repo.Save(store.NewSession(2, "/ask_ai", store.StateAwaitingQuery))

	a, found := repo.Get(1)
	assert.True(t, found)
	assert.Equal(t, "/sendmsg", a.Command)

	b, found := repo.Get(2)
	assert.True(t, found)
	assert.Equal(t, "/ask_ai", b.Command)

	repo.Delete(1)
	_, found = repo.Get(1)
	assert.False(t, found)
	_, found = repo.Get(2)
	assert.True(t, found)
}
