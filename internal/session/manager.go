// Package session keeps the wizard engines of in-progress entries, one per
// browser or API client, and hands finished records to the store.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/resell/internal/metrics"
	"github.com/erazemk/resell/internal/model"
	"github.com/erazemk/resell/internal/store"
	"github.com/erazemk/resell/internal/wizard"
)

// ErrNotFound is returned for an unknown, closed or expired session.
var ErrNotFound = errors.New("wizard session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Slide directions of the last step transition.
const (
	Backward = -1
	Still    = 0
	Forward  = 1
)

// State is a session as seen by a caller after an operation.
type State struct {
	ID uuid.UUID `json:"id"`
	// Direction is the slide direction of the last navigation event.
	Direction int         `json:"direction"`
	View      wizard.View `json:"view"`
}

type entry struct {
	engine    *wizard.Engine
	direction int
	lastUsed  time.Time
}

// Manager owns the open wizard sessions.
type Manager struct {
	db     *sql.DB
	secret string
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

// NewManager creates a manager storing finished records into db. Session
// tokens are signed with the secret kept in db's settings.
func NewManager(ctx context.Context, db *sql.DB, ttl time.Duration) (*Manager, error) {
	secret, err := store.GetSessionSecret(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("loading session secret: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		db:       db,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}, nil
}

// Open starts a new wizard on step 1 with an empty record.
func (m *Manager) Open() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()

	id := uuid.New()
	e := &entry{engine: wizard.New(), lastUsed: m.now()}
	m.sessions[id] = e
	metrics.WizardSessions.Set(float64(len(m.sessions)))
	return state(id, e)
}

// Get returns the current state of a session.
func (m *Manager) Get(id uuid.UUID) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(id)
	if err != nil {
		return State{}, err
	}
	return state(id, e), nil
}

// Update runs fn against the session's engine. Field edits and accessory
// toggles go through here; they never move the step.
func (m *Manager) Update(id uuid.UUID, fn func(*wizard.Engine) error) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(id)
	if err != nil {
		return State{}, err
	}
	e.direction = Still
	if err := fn(e.engine); err != nil {
		return state(id, e), err
	}
	return state(id, e), nil
}

// Next advances the wizard if the current step validates.
func (m *Manager) Next(id uuid.UUID) (State, bool, error) {
	return m.navigate(id, "next", (*wizard.Engine).GoNext, Forward)
}

// Back retreats the wizard one step.
func (m *Manager) Back(id uuid.UUID) (State, bool, error) {
	return m.navigate(id, "back", (*wizard.Engine).GoBack, Backward)
}

func (m *Manager) navigate(id uuid.UUID, event string, move func(*wizard.Engine) bool, dir int) (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(id)
	if err != nil {
		return State{}, false, err
	}
	moved := move(e.engine)
	e.direction = Still
	if moved {
		e.direction = dir
	}
	metrics.WizardEvents.WithLabelValues(event, metrics.Outcome(moved)).Inc()
	return state(id, e), moved, nil
}

// Finalize saves the record as a confirmed item. When the record is not
// complete nothing is stored, the session stays open and ok is false.
// On success the session is dropped.
func (m *Manager) Finalize(ctx context.Context, id uuid.UUID) (rec model.Record, st State, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(id)
	if err != nil {
		return model.Record{}, State{}, false, err
	}

	sink := store.NewSink(ctx, m.db)
	ok, err = e.engine.Save(sink)
	metrics.WizardEvents.WithLabelValues("save", metrics.Outcome(ok)).Inc()
	if err != nil {
		return model.Record{}, state(id, e), false, fmt.Errorf("saving record: %w", err)
	}
	if !ok {
		return model.Record{}, state(id, e), false, nil
	}
	m.drop(id)
	return sink.Last(), state(id, e), true, nil
}

// SaveDraft saves the record as a draft, whatever its state, and drops the
// session.
func (m *Manager) SaveDraft(ctx context.Context, id uuid.UUID) (model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.lookup(id)
	if err != nil {
		return model.Record{}, err
	}

	sink := store.NewSink(ctx, m.db)
	if err := e.engine.SaveDraft(sink); err != nil {
		metrics.WizardEvents.WithLabelValues("draft", metrics.OutcomeRefused).Inc()
		return model.Record{}, fmt.Errorf("saving draft: %w", err)
	}
	metrics.WizardEvents.WithLabelValues("draft", metrics.OutcomeApplied).Inc()
	m.drop(id)
	return sink.Last(), nil
}

// Close discards a session without saving anything.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.lookup(id); err != nil {
		return err
	}
	metrics.WizardEvents.WithLabelValues("close", metrics.OutcomeApplied).Inc()
	m.drop(id)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IssueToken returns a signed token naming the session.
func (m *Manager) IssueToken(id uuid.UUID) (string, error) {
	return GenerateToken(m.secret, id, m.ttl)
}

// ParseToken validates a token and returns the session it names.
func (m *Manager) ParseToken(token string) (uuid.UUID, error) {
	return ValidateToken(m.secret, token)
}

// lookup returns a live session and marks it used. Must hold m.mu.
func (m *Manager) lookup(id uuid.UUID) (*entry, error) {
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if now.Sub(e.lastUsed) > m.ttl {
		m.drop(id)
		return nil, ErrNotFound
	}
	e.lastUsed = now
	return e, nil
}

// sweep drops idle sessions. Must hold m.mu.
func (m *Manager) sweep() {
	now := m.now()
	for id, e := range m.sessions {
		if now.Sub(e.lastUsed) > m.ttl {
			delete(m.sessions, id)
		}
	}
	metrics.WizardSessions.Set(float64(len(m.sessions)))
}

func (m *Manager) drop(id uuid.UUID) {
	delete(m.sessions, id)
	metrics.WizardSessions.Set(float64(len(m.sessions)))
}

func state(id uuid.UUID, e *entry) State {
	return State{ID: id, Direction: e.direction, View: e.engine.View()}
}
