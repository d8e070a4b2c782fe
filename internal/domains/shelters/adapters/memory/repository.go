package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps shelters in memory.
type Repository struct {
	mu       sync.RWMutex
	shelters map[int64]*storedShelter
	nextID   int64
	now      func() time.Time
}

type storedShelter struct {
	shelter  *domain.Shelter
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{shelters: map[int64]*storedShelter{}, now: time.Now}
}

// WithClock overrides the clock used for metadata.
func (r *Repository) WithClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, shelter *domain.Shelter) (*ports.ShelterProjection, error) {
	if shelter == nil {
		return nil, errors.New("cannot save nil shelter")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.shelters {
		if entry.shelter.UserID == shelter.UserID && id != shelter.ID {
			return nil, ports.ErrAlreadyExists
		}
	}

	clone := shelter.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if existing, ok := r.shelters[clone.ID]; ok {
		metadata.CreatedAt = existing.metadata.CreatedAt
	}
	stored := &storedShelter{shelter: clone, metadata: metadata}
	r.shelters[clone.ID] = stored
	shelter.ID = clone.ID
	return stored.project(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.ShelterProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.shelters[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.project(), nil
}

func (r *Repository) FindByUser(_ context.Context, userID int64) (*ports.ShelterProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.shelters {
		if entry.shelter.UserID == userID {
			return entry.project(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *storedShelter) project() *ports.ShelterProjection {
	return projection.New(s.shelter.Clone(), s.metadata.CreatedAt, s.metadata.UpdatedAt)
}
