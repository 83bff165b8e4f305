package session

import (
	"context"
	"sync"
	"time"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memEntry
}

type memEntry struct {
	state   State
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: map[string]*memEntry{}}
}

// entryLocked returns the live entry for id, creating it when missing.
func (m *MemoryStore) entryLocked(id string) *memEntry {
	now := m.now()
	e, ok := m.sessions[id]
	if !ok || (m.ttl > 0 && now.After(e.expires)) {
		e = &memEntry{state: State{ID: id}}
		m.sessions[id] = e
	}
	e.expires = now.Add(m.ttl)
	return e
}

func (m *MemoryStore) Get(ctx context.Context, id string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || (m.ttl > 0 && m.now().After(e.expires)) {
		return State{ID: id}, nil
	}
	return cloneState(e.state), nil
}

func (m *MemoryStore) PublishSearch(ctx context.Context, id string, req models.SearchRequest) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(id)
	return applyPublish(&e.state, req, m.now()), nil
}

func (m *MemoryStore) StoreResults(ctx context.Context, id string, res Results) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return false, nil
	}
	return applyResults(&e.state, res, m.now()), nil
}

func (m *MemoryStore) SelectSchedule(ctx context.Context, id string, leg domain.Leg, sched models.EnrichedSchedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(id)
	applySelect(&e.state, leg, sched, m.now())
	return nil
}

func (m *MemoryStore) Reset(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.sessions {
		if m.ttl > 0 && now.After(e.expires) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// cloneState copies the slices a caller could otherwise mutate in place.
func cloneState(s State) State {
	if s.Search != nil {
		r := *s.Search
		s.Search = &r
	}
	if s.Results != nil {
		r := *s.Results
		r.Outbound = cloneLeg(r.Outbound)
		r.Return = cloneLeg(r.Return)
		s.Results = &r
	}
	if s.Selected != nil {
		v := cloneEnriched(*s.Selected)
		s.Selected = &v
	}
	if s.SelectedReturn != nil {
		v := cloneEnriched(*s.SelectedReturn)
		s.SelectedReturn = &v
	}
	return s
}

func cloneLeg(l *LegResults) *LegResults {
	if l == nil {
		return nil
	}
	out := &LegResults{
		Schedules: make([]models.EnrichedSchedule, len(l.Schedules)),
		Classes:   append([]string(nil), l.Classes...),
	}
	for i, s := range l.Schedules {
		out.Schedules[i] = cloneEnriched(s)
	}
	return out
}

func cloneEnriched(e models.EnrichedSchedule) models.EnrichedSchedule {
	e.Classes = append([]models.FareClass(nil), e.Classes...)
	return e
}

var _ Store = (*MemoryStore)(nil)
