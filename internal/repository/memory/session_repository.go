package memory

import (
	"time"

	"item-finder-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps analysis and reconciliation sessions in memory with
// a TTL. Sessions are per-interaction state; letting them expire is the
// cleanup strategy.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) SaveAnalysis(session *store.AnalysisSession) {
	r.cache.Set("analysis:"+session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) GetAnalysis(sessionID string) (*store.AnalysisSession, bool) {
	if x, found := r.cache.Get("analysis:" + sessionID); found {
		return x.(*store.AnalysisSession), true
	}
	return nil, false
}

func (r *SessionRepository) SaveReconciliation(session *store.ReconciliationSession) {
	r.cache.Set("reconcile:"+session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) GetReconciliation(sessionID string) (*store.ReconciliationSession, bool) {
	if x, found := r.cache.Get("reconcile:" + sessionID); found {
		return x.(*store.ReconciliationSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete("analysis:" + sessionID)
	r.cache.Delete("reconcile:" + sessionID)
}
