package service

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
)

// Registry owns the mapping from session id to Session. It replaces the
// ambient process-wide dictionary of the original design with an injected
// object that has defined creation and teardown.
type Registry struct {
	defaultBid int64
	defaultAsk int64
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry. defaultBid and defaultAsk are the
// fallback prices handed to every session's passive strategies.
func NewRegistry(defaultBid, defaultAsk int64, logger *slog.Logger) *Registry {
	return &Registry{
		defaultBid: defaultBid,
		defaultAsk: defaultAsk,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Create builds a session from the given config, seeds its simulated
// market, and registers it under a fresh id.
func (r *Registry) Create(cfg domain.SessionConfig) *Session {
	e := engine.NewEngine(engine.Config{
		InitialCash:     cfg.InitialCash,
		InitialShares:   cfg.InitialShares,
		DefaultBidPrice: r.defaultBid,
		DefaultAskPrice: r.defaultAsk,
	})
	e.Seed()

	s := &Session{
		ID:     uuid.New().String(),
		Config: cfg,
		Engine: e,
		logger: r.logger,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("session created", slog.String("session_id", s.ID))
	return s
}

// Get retrieves a session by id. It returns domain.ErrSessionNotFound if
// the session does not exist.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Exists reports whether a session with the given id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// List returns the ids of all registered sessions.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Remove stops a session's generator and deletes it from the registry.
// A no-op for unknown ids.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.StopUpdates()
		r.logger.Info("session removed", slog.String("session_id", id))
	}
}

// Shutdown stops every session's generator. Called on process teardown.
func (r *Registry) Shutdown() {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for _, s := range sessions {
		s.StopUpdates()
	}
}
