package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/repository"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if u.Phone != nil && existing.Phone != nil && *u.Phone == *existing.Phone {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.New()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type fakeGigs struct {
	mu     sync.Mutex
	nextID uint
	gigs   map[uint]models.Gig
}

func newFakeGigs() *fakeGigs {
	return &fakeGigs{nextID: 1, gigs: map[uint]models.Gig{}}
}

func (f *fakeGigs) Create(_ context.Context, g *models.Gig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = f.nextID
	f.nextID++
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	f.gigs[g.ID] = *g
	return nil
}

func (f *fakeGigs) Update(_ context.Context, g *models.Gig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gigs[g.ID]; !ok {
		return repository.ErrNotFound
	}
	g.UpdatedAt = time.Now()
	f.gigs[g.ID] = *g
	return nil
}

func (f *fakeGigs) FindByID(_ context.Context, id uint) (*models.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gigs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (f *fakeGigs) filter(keep func(models.Gig) bool) []models.Gig {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Gig{}
	for _, g := range f.gigs {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeGigs) ListByOwner(_ context.Context, owner uuid.UUID) ([]models.Gig, error) {
	return f.filter(func(g models.Gig) bool { return g.UserID == owner }), nil
}

func (f *fakeGigs) ListPublished(_ context.Context, filter repository.GigFilter) ([]models.Gig, int64, error) {
	gigs := f.filter(func(g models.Gig) bool {
		return g.Status == models.GigStatusPublished && (filter.Category == "" || g.Category == filter.Category)
	})
	return gigs, int64(len(gigs)), nil
}

func (f *fakeGigs) ListAll(_ context.Context, status models.GigStatus) ([]models.Gig, error) {
	return f.filter(func(g models.Gig) bool { return status == "" || g.Status == status }), nil
}

func (f *fakeGigs) SetStatus(_ context.Context, id uint, status models.GigStatus, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gigs[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.Status = status
	g.ReviewNote = note
	f.gigs[id] = g
	return nil
}

func (f *fakeGigs) Delete(_ context.Context, id uint, owner uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gigs[id]
	if !ok || g.UserID != owner {
		return repository.ErrNotFound
	}
	delete(f.gigs, id)
	return nil
}

func (f *fakeGigs) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, g := range f.filter(func(g models.Gig) bool { return g.Status == models.GigStatusPublished }) {
		if !seen[g.Category] {
			seen[g.Category] = true
			out = append(out, g.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

var errCacheMiss = errors.New("cache miss")

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return errCacheMiss
	}
	*(dest.(*[]string)) = append([]string{}, v...)
	return nil
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = append([]string{}, value.([]string)...)
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
