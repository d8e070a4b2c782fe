package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users in memory, indexed by id and username.
type Repository struct {
	mu         sync.RWMutex
	byID       map[int64]*domain.User
	byUsername map[string]int64
	nextID     int64
}

func NewRepository() *Repository {
	return &Repository{byID: map[int64]*domain.User{}, byUsername: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := user.Clone()
	if id, ok := r.byUsername[clone.Username]; ok && id != clone.ID {
		return nil, ports.ErrUsernameTaken
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if previous, ok := r.byID[clone.ID]; ok && previous.Username != clone.Username {
		delete(r.byUsername, previous.Username)
	}
	r.byID[clone.ID] = clone
	r.byUsername[clone.Username] = clone.ID
	user.ID = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byID[id]; ok {
		delete(r.byUsername, user.Username)
		delete(r.byID, id)
	}
	return nil
}
