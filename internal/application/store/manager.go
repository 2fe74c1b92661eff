package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	domainRepo "github.com/garzaro/uniformes-bff/internal/domain/repository"
)

// Session bundles the three stores belonging to one session key.
type Session struct {
	Cart    *CartStore
	Drafts  *DraftStore
	Schools *SchoolStore
}

// Manager owns the per-session stores and their write-through snapshot
// persistence. Stores are rebuilt from persisted snapshots on first
// access after a restart, which is the server-side equivalent of a page
// reload rehydrating browser storage.
type Manager struct {
	states    domainRepo.SessionStateRepository
	directory domainRepo.SchoolDirectory
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a store manager.
func NewManager(states domainRepo.SessionStateRepository, directory domainRepo.SchoolDirectory, log *zap.Logger) *Manager {
	return &Manager{
		states:    states,
		directory: directory,
		log:       log,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the stores for a session key, creating and rehydrating
// them on first access. Corrupt or missing snapshots yield fresh stores;
// a snapshot read failure is logged, never surfaced.
func (m *Manager) Session(ctx context.Context, sessionKey string) *Session {
	m.mu.Lock()
	if session, ok := m.sessions[sessionKey]; ok {
		m.mu.Unlock()
		return session
	}
	m.mu.Unlock()

	session := &Session{
		Cart:    NewCartStore(),
		Drafts:  NewDraftStore(),
		Schools: NewSchoolStore(m.directory),
	}

	m.restoreCart(ctx, sessionKey, session)
	m.restoreDrafts(ctx, sessionKey, session)
	m.restoreSchool(ctx, sessionKey, session)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have built the session while we were restoring.
	if existing, ok := m.sessions[sessionKey]; ok {
		return existing
	}
	m.sessions[sessionKey] = session
	return session
}

// SaveCart persists the cart snapshot for a session.
func (m *Manager) SaveCart(ctx context.Context, sessionKey string, session *Session) {
	m.persist(ctx, sessionKey, entity.StoreKeyCart, session.Cart.Snapshot())
}

// SaveDrafts persists the drafts snapshot for a session.
func (m *Manager) SaveDrafts(ctx context.Context, sessionKey string, session *Session) {
	m.persist(ctx, sessionKey, entity.StoreKeyDrafts, session.Drafts.Snapshot())
}

// SaveSchool persists the school selection snapshot for a session.
func (m *Manager) SaveSchool(ctx context.Context, sessionKey string, session *Session) {
	m.persist(ctx, sessionKey, entity.StoreKeySelectedSchool, session.Schools.Snapshot())
}

// ClearSession empties every store of a session and removes its persisted
// snapshots. Used on logout and session reset.
func (m *Manager) ClearSession(ctx context.Context, sessionKey string) {
	m.mu.Lock()
	delete(m.sessions, sessionKey)
	m.mu.Unlock()

	if err := m.states.DeleteSession(ctx, sessionKey); err != nil {
		m.log.Warn("failed to delete session snapshots", zap.String("session", sessionKey), zap.Error(err))
	}
}

func (m *Manager) persist(ctx context.Context, sessionKey, storeKey string, snapshot interface{}) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		m.log.Error("failed to encode snapshot", zap.String("store", storeKey), zap.Error(err))
		return
	}
	if err := m.states.Put(ctx, sessionKey, storeKey, string(payload)); err != nil {
		m.log.Warn("failed to persist snapshot", zap.String("store", storeKey), zap.Error(err))
	}
}

func (m *Manager) restoreCart(ctx context.Context, sessionKey string, session *Session) {
	var snap entity.CartSnapshot
	if m.loadSnapshot(ctx, sessionKey, entity.StoreKeyCart, &snap) {
		session.Cart.Restore(snap)
	}
}

func (m *Manager) restoreDrafts(ctx context.Context, sessionKey string, session *Session) {
	var snap entity.DraftsSnapshot
	if m.loadSnapshot(ctx, sessionKey, entity.StoreKeyDrafts, &snap) {
		session.Drafts.Restore(snap)
	}
}

func (m *Manager) restoreSchool(ctx context.Context, sessionKey string, session *Session) {
	var snap entity.SchoolSnapshot
	if m.loadSnapshot(ctx, sessionKey, entity.StoreKeySelectedSchool, &snap) {
		session.Schools.Restore(snap)
	}
}

func (m *Manager) loadSnapshot(ctx context.Context, sessionKey, storeKey string, out interface{}) bool {
	state, err := m.states.Get(ctx, sessionKey, storeKey)
	if err != nil {
		m.log.Warn("failed to read snapshot", zap.String("store", storeKey), zap.Error(err))
		return false
	}
	if state == nil {
		return false
	}
	if err := json.Unmarshal([]byte(state.Payload), out); err != nil {
		m.log.Warn("discarding corrupt snapshot", zap.String("store", storeKey), zap.Error(err))
		return false
	}
	return true
}
