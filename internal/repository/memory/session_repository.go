package memory

import (
	"strconv"
	"time"

	"tg-assist-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the process-wide chat -> session mapping.
// Entries expire after an hour of inactivity so abandoned mid-workflow
// sessions do not accumulate forever.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, expired entries purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(key(session.ChatID), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(chatID int64) (*store.Session, bool) {
	if x, found := r.cache.Get(key(chatID)); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(chatID int64) {
	r.cache.Delete(key(chatID))
}
