package journey

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/aamoria/wellness-api/models"
)

// memDocs keeps journeys as encoded JSON so callers never share slices with
// the stored copy.
type memDocs struct {
	mu      sync.Mutex
	rows    map[string][]byte
	saveErr error
	// beforeSave runs once per Save, before the version check.
	beforeSave func(slug string)
	saves      int
}

func newMemDocs() *memDocs {
	return &memDocs{rows: map[string][]byte{}}
}

func (m *memDocs) put(j *models.Journey) {
	raw, err := json.Marshal(j)
	if err != nil {
		panic(err)
	}
	m.rows[j.Slug] = raw
}

func (m *memDocs) get(slug string) (*models.Journey, bool) {
	raw, ok := m.rows[slug]
	if !ok {
		return nil, false
	}
	var j models.Journey
	if err := json.Unmarshal(raw, &j); err != nil {
		panic(err)
	}
	return &j, true
}

func (m *memDocs) FindBySlug(_ context.Context, slug string) (*models.Journey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.get(slug)
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

func (m *memDocs) List(_ context.Context) ([]models.Journey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slugs := make([]string, 0, len(m.rows))
	for slug := range m.rows {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	out := make([]models.Journey, 0, len(slugs))
	for _, slug := range slugs {
		j, _ := m.get(slug)
		out = append(out, *j)
	}
	return out, nil
}

func (m *memDocs) Create(_ context.Context, j *models.Journey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[j.Slug]; ok {
		return ErrExists
	}
	m.put(j)
	return nil
}

func (m *memDocs) Save(_ context.Context, j *models.Journey) error {
	if m.beforeSave != nil {
		m.beforeSave(j.Slug)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	stored, ok := m.get(j.Slug)
	if !ok {
		return ErrNotFound
	}
	if stored.Version != j.Version {
		return ErrStale
	}
	j.Version++
	m.put(j)
	return nil
}

type memMirror struct {
	mu         sync.Mutex
	rows       map[string]models.Product
	categories []models.Category
	upsertErr  error
	deleteErr  error
}

func newMemMirror(categories ...models.Category) *memMirror {
	return &memMirror{rows: map[string]models.Product{}, categories: categories}
}

func (m *memMirror) Upsert(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if existing, ok := m.rows[p.ID]; ok {
		p.CategoryID = existing.CategoryID
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memMirror) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memMirror) FirstCategory(_ context.Context) (*models.Category, error) {
	if len(m.categories) == 0 {
		return nil, ErrNotFound
	}
	c := m.categories[0]
	return &c, nil
}

var errUnreachable = errors.New("database unreachable")
