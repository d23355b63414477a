package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func fptr(v float64) *float64 { return &v }

type fakeSessionRepo struct {
	loadResp   models.Session
	loadErr    error
	saveErr    error
	savedCalls []models.Session
}

func (f *fakeSessionRepo) Load(ctx context.Context) (models.Session, error) {
	return f.loadResp, f.loadErr
}

func (f *fakeSessionRepo) Save(ctx context.Context, s models.Session) error {
	f.savedCalls = append(f.savedCalls, s)
	if f.saveErr == nil {
		f.loadResp = s
	}
	return f.saveErr
}

// memReadingRepo keeps readings in memory, ordered like the SQL repository.
type memReadingRepo struct {
	rows          []models.Reading
	appendErr     error
	listErr       error
	saveDeltasErr error
	deleted       bool
}

func (m *memReadingRepo) Append(ctx context.Context, r models.Reading) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows = append(m.rows, r)
	return nil
}

func (m *memReadingRepo) List(ctx context.Context) ([]models.Reading, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]models.Reading(nil), m.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memReadingRepo) Get(ctx context.Context, id string) (models.Reading, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reading{}, repository.ErrNotFound
}

func (m *memReadingRepo) Update(ctx context.Context, r models.Reading) error {
	for i := range m.rows {
		if m.rows[i].ID == r.ID {
			m.rows[i].Temp = r.Temp
			m.rows[i].Timestamp = r.Timestamp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReadingRepo) Delete(ctx context.Context, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReadingRepo) SaveDeltas(ctx context.Context, readings []models.Reading) error {
	if m.saveDeltasErr != nil {
		return m.saveDeltasErr
	}
	byID := make(map[string]models.Reading, len(readings))
	for _, r := range readings {
		byID[r.ID] = r
	}
	for i := range m.rows {
		if r, ok := byID[m.rows[i].ID]; ok {
			m.rows[i].DeltaFromStart = r.DeltaFromStart
			m.rows[i].DeltaFromPrevious = r.DeltaFromPrevious
		}
	}
	return nil
}

func (m *memReadingRepo) DeleteAll(ctx context.Context) error {
	m.rows = nil
	m.deleted = true
	return nil
}

type memOvenRepo struct {
	events       []models.OvenEvent
	appendErr    error
	listErr      error
	deleteAllErr error
	deleted      bool

	gotFrom time.Time
	gotTo   time.Time
}

func (m *memOvenRepo) Append(ctx context.Context, e models.OvenEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memOvenRepo) List(ctx context.Context, from, to time.Time) ([]models.OvenEvent, error) {
	m.gotFrom, m.gotTo = from, to
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.OvenEvent
	for _, e := range m.events {
		if !from.IsZero() && e.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && e.Timestamp.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memOvenRepo) DeleteAll(ctx context.Context) error {
	if m.deleteAllErr != nil {
		return m.deleteAllErr
	}
	m.events = nil
	m.deleted = true
	return nil
}

// memTx hands the in-memory repos to fn and restores their contents when fn fails.
type memTx struct {
	sessions *fakeSessionRepo
	readings *memReadingRepo
	oven     *memOvenRepo
	calls    int
}

func (m *memTx) InTx(ctx context.Context, fn func(repository.Stores) error) error {
	m.calls++
	var (
		st       repository.Stores
		rows     []models.Reading
		events   []models.OvenEvent
		loadResp models.Session
	)
	if m.sessions != nil {
		st.Sessions = m.sessions
		loadResp = m.sessions.loadResp
	}
	if m.readings != nil {
		st.Readings = m.readings
		rows = append([]models.Reading(nil), m.readings.rows...)
	}
	if m.oven != nil {
		st.OvenEvents = m.oven
		events = append([]models.OvenEvent(nil), m.oven.events...)
	}

	if err := fn(st); err != nil {
		if m.sessions != nil {
			m.sessions.loadResp = loadResp
		}
		if m.readings != nil {
			m.readings.rows = rows
		}
		if m.oven != nil {
			m.oven.events = events
		}
		return err
	}
	return nil
}

func newTestSessions(repo *fakeSessionRepo, readings *memReadingRepo, oven *memOvenRepo) *SessionService {
	return NewSessionService(repo, &memTx{sessions: repo, readings: readings, oven: oven}, SessionDefaults{}, fixedClock(t0))
}

func newTestReadings(repo *memReadingRepo, now func() time.Time) (*ReadingService, *memTx) {
	tx := &memTx{readings: repo}
	return NewReadingService(repo, tx, now), tx
}

func lastSaved(t *testing.T, f *fakeSessionRepo) models.Session {
	t.Helper()
	if len(f.savedCalls) == 0 {
		t.Fatalf("expected at least one Save call")
	}
	return f.savedCalls[len(f.savedCalls)-1]
}
