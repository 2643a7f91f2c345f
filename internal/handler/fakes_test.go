package handler

import (
	"context"
	"sync"

	"github.com/noah-isme/brightminds-api/internal/dto"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/repository"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

type fakeNewsSrv struct {
	items     []models.PublishedNews
	created   *models.News
	err       error
	lastID    string
	lastIdent models.Identity
	lastReq   dto.UpdateNewsRequest
}

func (f *fakeNewsSrv) ListPublished(context.Context) ([]models.PublishedNews, error) {
	return f.items, f.err
}

func (f *fakeNewsSrv) GetPublished(_ context.Context, id string) (*models.PublishedNews, error) {
	f.lastID = id
	for _, item := range f.items {
		if item.ID == id || item.Slug == id {
			item := item
			return &item, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "Article not found")
}

func (f *fakeNewsSrv) Create(_ context.Context, identity models.Identity, req dto.CreateNewsRequest) (*models.News, error) {
	f.lastIdent = identity
	if f.err != nil {
		return nil, f.err
	}
	f.created = &models.News{ID: "n1", Title: req.Title, AuthorID: identity.ID, IsPublished: identity.Role.IsAdmin()}
	return f.created, nil
}

func (f *fakeNewsSrv) Update(_ context.Context, identity models.Identity, id string, req dto.UpdateNewsRequest) (*models.News, error) {
	f.lastIdent, f.lastID, f.lastReq = identity, id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.News{ID: id}, nil
}

func (f *fakeNewsSrv) Delete(_ context.Context, identity models.Identity, id string) error {
	f.lastIdent, f.lastID = identity, id
	return f.err
}

// fakeEventSrv deletes from a shared set so concurrent requests race the way
// the store does.
type fakeEventSrv struct {
	mu     sync.Mutex
	events map[string]models.Event
}

func (f *fakeEventSrv) List(context.Context) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Event{}
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventSrv) Create(_ context.Context, identity models.Identity, req dto.CreateEventRequest) (*models.Event, error) {
	if !identity.Role.IsStaff() {
		return nil, appErrors.ErrForbidden
	}
	return &models.Event{ID: "e1", Title: req.Title, CreatedBy: identity.ID}, nil
}

func (f *fakeEventSrv) Update(_ context.Context, _ models.Identity, id string, _ dto.UpdateEventRequest) (*models.Event, error) {
	return &models.Event{ID: id}, nil
}

func (f *fakeEventSrv) Delete(_ context.Context, _ models.Identity, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "Event not found")
	}
	delete(f.events, id)
	return nil
}

type fakeUserSrv struct {
	users    []models.User
	deleteFn func(identity models.Identity, id string) error
	export   *dto.UserExport
	format   dto.ExportFormat
}

func (f *fakeUserSrv) List(context.Context, models.Identity) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserSrv) Create(_ context.Context, _ models.Identity, req dto.CreateUserRequest) (*models.User, error) {
	return &models.User{ID: "u-new", Name: req.Name, Email: req.Email, Role: req.Role, MustChangePassword: true, PasswordHash: "secret-hash"}, nil
}

func (f *fakeUserSrv) Delete(_ context.Context, identity models.Identity, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(identity, id)
	}
	return nil
}

func (f *fakeUserSrv) Export(_ context.Context, _ models.Identity, format dto.ExportFormat) (*dto.UserExport, error) {
	f.format = format
	return f.export, nil
}

type fakeSettingSrv struct {
	setting *models.Setting
}

func (f *fakeSettingSrv) Get(context.Context, models.Identity) (*models.Setting, error) {
	if f.setting == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Settings not found")
	}
	return f.setting, nil
}

func (f *fakeSettingSrv) Update(_ context.Context, identity models.Identity, req dto.UpdateSettingsRequest) (*models.Setting, error) {
	if !identity.Role.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}
	if req.SchoolName != nil {
		f.setting.SchoolName = *req.SchoolName
	}
	f.setting.UpdatedBy = identity.ID
	return f.setting, nil
}

type fakeDashboardSrv struct {
	stats *dto.DashboardStats
}

func (f *fakeDashboardSrv) Stats(context.Context, models.Identity) (*dto.DashboardStats, error) {
	return f.stats, nil
}

// memAuthUsers backs a real AuthService in router tests.
type memAuthUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memAuthUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAuthUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memAuthUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memAuthUsers) UpdatePassword(_ context.Context, id, hash string, mustChange bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.PasswordHash, u.MustChangePassword = hash, mustChange
	m.users[id] = u
	return nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }
