package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	claimed   bool
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// seed stores a user as-is, bypassing Create.
func (r *memUserRepo) seed(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	c.ID = primitive.NewObjectID().Hex()
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *memUserRepo) UpdateCredential(_ context.Context, id string, cred domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cred.IsLegacy() {
		return domain.ErrPlaintextCredential
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Credential = cred
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) ClaimBootstrapAdmin(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed || len(r.users) > 0 {
		return false, nil
	}
	r.claimed = true
	return true, nil
}

func (r *memUserRepo) ReleaseBootstrapAdmin(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claimed = false
	return nil
}

// ---------------------------------------------------------------------------
// In-memory alumni repository (mirrors the Mongo filter and sort)
// ---------------------------------------------------------------------------

type memAlumniRepo struct {
	records    map[string]*domain.Alumni
	listErr    error
	lastFilter ports.AlumniListFilter
}

func newMemAlumniRepo() *memAlumniRepo {
	return &memAlumniRepo{records: make(map[string]*domain.Alumni)}
}

func (r *memAlumniRepo) Create(_ context.Context, a *domain.Alumni) (*domain.Alumni, error) {
	c := *a
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	r.records[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memAlumniRepo) FindByID(_ context.Context, id string) (*domain.Alumni, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, domain.ErrAlumniNotFound
	}
	c := *a
	return &c, nil
}

func (r *memAlumniRepo) List(_ context.Context, f ports.AlumniListFilter) ([]*domain.Alumni, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	q := strings.ToLower(f.Search)
	var matched []*domain.Alumni
	for _, a := range r.records {
		if !a.DirectoryVisible() {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Email), q) &&
			!strings.Contains(strings.ToLower(a.Company), q) &&
			!strings.Contains(strings.ToLower(a.Department), q) {
			continue
		}
		c := *a
		matched = append(matched, &c)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*domain.Alumni{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memAlumniRepo) Replace(_ context.Context, id string, a *domain.Alumni) (*domain.Alumni, error) {
	existing, ok := r.records[id]
	if !ok {
		return nil, domain.ErrAlumniNotFound
	}
	c := *a
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	r.records[id] = &c
	out := c
	return &out, nil
}

func (r *memAlumniRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return domain.ErrAlumniNotFound
	}
	delete(r.records, id)
	return nil
}
