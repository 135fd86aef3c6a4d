package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"wikiquiz/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CookieName    = "wikiquiz_session"
	sweepInterval = time.Minute
)

// Session is one browser's page state.
type Session struct {
	ID       string
	Generate *views.GenerateView
	History  *views.HistoryView

	lastSeen time.Time
}

func (s *Session) close() {
	s.Generate.Close()
	s.History.Dismiss()
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ctx      context.Context
	starter  views.Starter
	history  views.HistoryReader
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// NewStore creates an empty store. Views of every session live until ctx is
// cancelled or the session is swept.
func NewStore(ctx context.Context, starter views.Starter, history views.HistoryReader, ttl time.Duration, logger *zap.SugaredLogger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ctx:      ctx,
		starter:  starter,
		history:  history,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the session named by the request cookie, creating one and
// setting the cookie when it is missing or expired.
func (s *Store) Get(w http.ResponseWriter, r *http.Request) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if cookie, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.sessions[cookie.Value]; ok {
			sess.lastSeen = now
			return sess
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		Generate: views.NewGenerateView(s.ctx, s.starter),
		History:  views.NewHistoryView(s.history),
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debugf("Created session %s", sess.ID)
	return sess
}

// Sweep closes and forgets sessions idle for longer than the TTL.
func (s *Store) Sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.ttl)
	expired := make([]*Session, 0)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		s.logger.Infof("Expired %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			s.Close()
			return
		}
	}
}

func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
