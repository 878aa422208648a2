package memory

import (
	"sync"
	"time"

	"writer-coach-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps dialog sessions in process memory. Sessions idle
// for an hour are evicted; the dialog layer recreates them on the next
// message (language comes back from the preference repository).
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	r := &SessionRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
	// Locks live exactly as long as their session, otherwise the map
	// grows by one entry per user ever seen.
	c.OnEvicted(func(userID string, _ interface{}) {
		r.mu.Lock()
		delete(r.locks, userID)
		r.mu.Unlock()
	})
	return r
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

// UserLock returns the mutex serializing message handling for one user.
// Messages for distinct users proceed in parallel; messages from the same
// user are applied in arrival order.
func (r *SessionRepository) UserLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[userID]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[userID] = l
	return l
}
