package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/cookbook/internal/recipe"
)

// previewSession holds a parsed import batch between preview and confirm.
type previewSession struct {
	recipes   []recipe.Recipe
	rowErrors []recipe.RowError
	createdAt time.Time
}

// previewStore keeps preview sessions in memory, keyed by opaque token.
// Sessions expire after the configured TTL; a janitor goroutine sweeps
// expired entries so abandoned previews do not accumulate.
type previewStore struct {
	mu       sync.Mutex
	sessions map[string]previewSession
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func newPreviewStore(ttl time.Duration) *previewStore {
	ps := &previewStore{
		sessions: make(map[string]previewSession),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go ps.janitor()
	return ps
}

// put stores a parsed batch and returns its claim token.
func (ps *previewStore) put(recipes []recipe.Recipe, rowErrors []recipe.RowError) string {
	token := uuid.NewString()

	ps.mu.Lock()
	ps.sessions[token] = previewSession{
		recipes:   recipes,
		rowErrors: rowErrors,
		createdAt: time.Now(),
	}
	ps.mu.Unlock()

	return token
}

// take claims and removes the session for token. A token can be confirmed
// at most once; expired or unknown tokens report false.
func (ps *previewStore) take(token string) (previewSession, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	sess, ok := ps.sessions[token]
	if !ok {
		return previewSession{}, false
	}
	delete(ps.sessions, token)

	if time.Since(sess.createdAt) > ps.ttl {
		return previewSession{}, false
	}
	return sess, true
}

func (ps *previewStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ps.done:
			return
		case <-ticker.C:
			ps.mu.Lock()
			for token, sess := range ps.sessions {
				if time.Since(sess.createdAt) > ps.ttl {
					delete(ps.sessions, token)
				}
			}
			ps.mu.Unlock()
		}
	}
}

func (ps *previewStore) stop() {
	ps.stopOnce.Do(func() { close(ps.done) })
}
