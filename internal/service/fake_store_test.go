package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/repository"
)

// memoryDB хранилище в памяти. Транзакции выполняются строго по одной,
// при ошибке состояние восстанавливается из снимка.
type memoryDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	sessions      map[int64]*model.Session
	professionals map[int64]*model.Professional
	tokens        map[int64]string
	nextSession   int64
	nextPro       int64

	failCreateBatch error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		sessions:      make(map[int64]*model.Session),
		professionals: make(map[int64]*model.Professional),
		tokens:        make(map[int64]string),
	}
}

func (db *memoryDB) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	snapshot := db.snapshot()
	repos := repository.TxRepositories{
		Sessions:      &memorySessions{db: db},
		Professionals: &memoryProfessionals{db: db},
	}

	if err := fn(ctx, repos); err != nil {
		db.restore(snapshot)
		return err
	}

	return nil
}

type dbSnapshot struct {
	sessions      map[int64]model.Session
	professionals map[int64]model.Professional
	tokens        map[int64]string
	nextSession   int64
	nextPro       int64
}

func (db *memoryDB) snapshot() dbSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := dbSnapshot{
		sessions:      make(map[int64]model.Session, len(db.sessions)),
		professionals: make(map[int64]model.Professional, len(db.professionals)),
		tokens:        make(map[int64]string, len(db.tokens)),
		nextSession:   db.nextSession,
		nextPro:       db.nextPro,
	}
	for id, v := range db.sessions {
		s.sessions[id] = *v
	}
	for id, v := range db.professionals {
		s.professionals[id] = *v
	}
	for id, v := range db.tokens {
		s.tokens[id] = v
	}
	return s
}

func (db *memoryDB) restore(s dbSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessions = make(map[int64]*model.Session, len(s.sessions))
	for id, v := range s.sessions {
		v := v
		db.sessions[id] = &v
	}
	db.professionals = make(map[int64]*model.Professional, len(s.professionals))
	for id, v := range s.professionals {
		v := v
		db.professionals[id] = &v
	}
	db.tokens = s.tokens
	db.nextSession = s.nextSession
	db.nextPro = s.nextPro
}

func (db *memoryDB) sessionStore() *memorySessions {
	return &memorySessions{db: db}
}

func (db *memoryDB) professionalStore() *memoryProfessionals {
	return &memoryProfessionals{db: db}
}

func (db *memoryDB) addProfessional(first, last string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.nextPro++
	db.professionals[db.nextPro] = &model.Professional{ID: db.nextPro, FirstName: first, LastName: last}
	return db.nextPro
}

func (db *memoryDB) addSession(professionalID int64, start time.Time, booked bool) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.nextSession++
	s := &model.Session{ID: db.nextSession, ProfessionalID: professionalID, Start: start, End: start.Add(model.SlotDuration), Booked: booked}
	if booked {
		customer := "someone"
		s.Customer = &customer
	}
	db.sessions[db.nextSession] = s
	return db.nextSession
}

func (db *memoryDB) session(id int64) *model.Session {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.sessions[id]
	if !ok {
		return nil
	}
	c := *s
	return &c
}

func (db *memoryDB) sorted(match func(*model.Session) bool) []*model.Session {
	out := make([]*model.Session, 0)
	for _, s := range db.sessions {
		if match(s) {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) || (out[i].Start.Equal(out[j].Start) && out[i].ID < out[j].ID) })
	return out
}

type memorySessions struct {
	db *memoryDB
}

func (m *memorySessions) CreateBatch(_ context.Context, sessions []*model.Session) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, s := range sessions {
		m.db.nextSession++
		s.ID = m.db.nextSession
		c := *s
		m.db.sessions[s.ID] = &c
		if m.db.failCreateBatch != nil {
			return m.db.failCreateBatch
		}
	}
	return nil
}

func (m *memorySessions) GetByID(_ context.Context, id int64) (*model.Session, error) {
	return m.db.session(id), nil
}

func (m *memorySessions) GetByIDForUpdate(ctx context.Context, id int64) (*model.Session, error) {
	return m.GetByID(ctx, id)
}

func (m *memorySessions) FindOverlapping(_ context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	within := func(t time.Time) bool { return !t.Before(start) && !t.After(end) }
	out := m.db.sorted(func(s *model.Session) bool {
		return s.ProfessionalID == professionalID && (within(s.Start) || within(s.End))
	})
	// ORDER BY start DESC
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (m *memorySessions) FindFreeAtForUpdate(_ context.Context, professionalID int64, start time.Time) (*model.Session, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := m.db.sorted(func(s *model.Session) bool {
		return s.ProfessionalID == professionalID && s.Start.Equal(start) && !s.Booked
	})
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (m *memorySessions) ListFree(_ context.Context, filter model.AvailabilityFilter) ([]*model.Session, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	return m.db.sorted(func(s *model.Session) bool {
		if s.Booked {
			return false
		}
		if filter.ProfessionalID != nil && s.ProfessionalID != *filter.ProfessionalID {
			return false
		}
		if filter.Range.IsSet() && (s.Start.Before(filter.Range.From) || s.End.After(filter.Range.To)) {
			return false
		}
		return true
	}), nil
}

func (m *memorySessions) List(_ context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := m.db.sorted(func(s *model.Session) bool {
		if filter.ProfessionalID != nil && s.ProfessionalID != *filter.ProfessionalID {
			return false
		}
		if filter.Booked != nil && s.Booked != *filter.Booked {
			return false
		}
		return true
	})
	if filter.Page.Offset > 0 {
		if filter.Page.Offset >= len(out) {
			return []*model.Session{}, nil
		}
		out = out[filter.Page.Offset:]
	}
	if filter.Page.Limit > 0 && filter.Page.Limit < len(out) {
		out = out[:filter.Page.Limit]
	}
	return out, nil
}

func (m *memorySessions) Book(_ context.Context, ids []int64, customer string) ([]*model.Session, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := make([]*model.Session, 0, len(ids))
	for _, id := range ids {
		s, ok := m.db.sessions[id]
		if !ok || s.Booked {
			continue
		}
		c := customer
		s.Booked = true
		s.Customer = &c
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memorySessions) DeleteOwned(_ context.Context, id, professionalID int64) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	s, ok := m.db.sessions[id]
	if !ok || s.ProfessionalID != professionalID {
		return false, nil
	}
	delete(m.db.sessions, id)
	return true, nil
}

func (m *memorySessions) LockProfessional(context.Context, int64) error {
	return nil
}

type memoryProfessionals struct {
	db *memoryDB
}

func (m *memoryProfessionals) Create(_ context.Context, p *model.Professional) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	m.db.nextPro++
	p.ID = m.db.nextPro
	c := *p
	m.db.professionals[p.ID] = &c
	return nil
}

func (m *memoryProfessionals) SetToken(_ context.Context, id int64, token string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	m.db.tokens[id] = token
	return nil
}

func (m *memoryProfessionals) GetByID(_ context.Context, id int64) (*model.Professional, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	p, ok := m.db.professionals[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (m *memoryProfessionals) Exists(ctx context.Context, id int64) (bool, error) {
	p, err := m.GetByID(ctx, id)
	return p != nil, err
}

func (m *memoryProfessionals) List(_ context.Context, _ model.ProfessionalFilter) ([]*model.Professional, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	out := make([]*model.Professional, 0, len(m.db.professionals))
	for _, p := range m.db.professionals {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryProfessionals) Update(_ context.Context, p *model.Professional) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	existing, ok := m.db.professionals[p.ID]
	if !ok {
		return false, nil
	}
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	return true, nil
}

func (m *memoryProfessionals) Delete(_ context.Context, id int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	delete(m.db.professionals, id)
	return nil
}
