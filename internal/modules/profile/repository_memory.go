package profile

import (
	"context"
	"sort"
	"sync"
)

// memoryRepository is a map-backed Repository. It enforces email uniqueness
// like the UNIQUE(email) constraint of the Postgres schema.
type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]Profile
	byEmail map[string]int64
}

// NewMemoryRepository creates an empty in-memory profile repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[int64]Profile),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.byID[id]
	return &p, nil
}

func (r *memoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

func (r *memoryRepository) Save(_ context.Context, p *Profile) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	if owner, ok := r.byEmail[stored.Email]; ok && owner != stored.ID {
		return nil, ErrDuplicateEmail
	}

	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else {
		prev, ok := r.byID[stored.ID]
		if !ok {
			return nil, ErrNotFound
		}
		delete(r.byEmail, prev.Email)
	}

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return &stored, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, p.Email)
	return nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]Profile, 0, len(r.byID))
	for _, p := range r.byID {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}
