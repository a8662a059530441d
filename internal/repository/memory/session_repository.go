package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// VisitorSession is the short-lived identity we keep between chat messages so
// the relay doesn't hit Postgres for every turn of a conversation.
type VisitorSession struct {
	Id           uuid.UUID
	SessionKey   string
	VisitorEmail string
	VisitorName  string
	IsEscalated  bool
	LastSeenAt   time.Time
}

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Visitors idle for an hour lose their cache slot; expired entries are
	// purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *VisitorSession) {
	session.LastSeenAt = time.Now()
	r.cache.Set(session.SessionKey, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionKey string) (*VisitorSession, bool) {
	if x, found := r.cache.Get(sessionKey); found {
		return x.(*VisitorSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionKey string) {
	r.cache.Delete(sessionKey)
}
