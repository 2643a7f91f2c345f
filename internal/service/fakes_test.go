package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/repository"
)

// memStore is an in-memory stand-in for the Mongo repositories. Methods are
// grouped by the interface they satisfy.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	news     map[string]models.News
	events   map[string]models.Event
	setting  *models.Setting
	err      error
	upserts  int
	ensureNs int
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]models.User{},
		news:   map[string]models.News{},
		events: map[string]models.Event{},
	}
}

type memUsers struct{ *memStore }
type memNews struct{ *memStore }
type memEvents struct{ *memStore }
type memSettings struct{ *memStore }

func (m memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m memUsers) UpdatePassword(ctx context.Context, id, hash string, mustChange bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	u.MustChangePassword = mustChange
	m.users[id] = u
	return nil
}

func (m memUsers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m memUsers) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m memNews) Create(ctx context.Context, news *models.News) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.news[news.ID] = *news
	return nil
}

func (m memNews) FindByID(ctx context.Context, id string) (*models.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.news[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (m memNews) FindPublished(ctx context.Context, idOrSlug string) (*models.PublishedNews, error) {
	items, _ := m.ListPublished(ctx)
	for _, item := range items {
		if item.ID == idOrSlug || item.Slug == idOrSlug {
			item := item
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memNews) ListPublished(ctx context.Context) ([]models.PublishedNews, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.PublishedNews{}
	for _, n := range m.news {
		if !n.IsPublished {
			continue
		}
		out = append(out, models.PublishedNews{News: n, AuthorName: m.users[n.AuthorID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m memNews) Update(ctx context.Context, news *models.News) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.news[news.ID]; !ok {
		return repository.ErrNotFound
	}
	m.news[news.ID] = *news
	return nil
}

func (m memNews) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.news[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.news, id)
	return nil
}

func (m memNews) CountPublished(ctx context.Context) (int64, error) {
	items, err := m.ListPublished(ctx)
	return int64(len(items)), err
}

func (m memEvents) Create(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events[event.ID] = *event
	return nil
}

func (m memEvents) FindByID(ctx context.Context, id string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m memEvents) List(ctx context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m memEvents) Update(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	m.events[event.ID] = *event
	return nil
}

func (m memEvents) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m memEvents) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, e := range m.events {
		if !e.Date.Before(now) {
			n++
		}
	}
	return n, nil
}

func (m memSettings) Get(ctx context.Context) (*models.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.setting == nil {
		return nil, repository.ErrNotFound
	}
	s := *m.setting
	return &s, nil
}

func (m memSettings) EnsureDefaults(ctx context.Context, defaults models.Setting, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureNs++
	if m.err != nil {
		return false, m.err
	}
	if m.setting != nil {
		return false, nil
	}
	defaults.CreatedAt, defaults.UpdatedAt = now, now
	m.setting = &defaults
	return true, nil
}

func (m memSettings) Upsert(ctx context.Context, req dto.UpdateSettingsRequest, defaults models.Setting, updatedBy string, now time.Time) (*models.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.upserts++
	if m.setting == nil {
		defaults.CreatedAt = now
		m.setting = &defaults
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&m.setting.SchoolName, req.SchoolName)
	apply(&m.setting.Email, req.Email)
	apply(&m.setting.Phone, req.Phone)
	apply(&m.setting.Address, req.Address)
	apply(&m.setting.Website, req.Website)
	m.setting.UpdatedBy = updatedBy
	m.setting.UpdatedAt = now
	s := *m.setting
	return &s, nil
}
