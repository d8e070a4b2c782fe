package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the clock used for metadata timestamps.
func (r *Repository) WithClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := pet.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.pets[clone.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedPet{pet: clone, metadata: metadata}
	r.pets[clone.ID] = stored
	pet.ID = clone.ID
	return stored.project(), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.project(), nil
}

// Find returns the pets matching query ordered by ID.
func (r *Repository) Find(_ context.Context, query ports.PetQuery) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*pettypes.PetProjection, 0, len(r.pets))
	for _, entry := range r.pets {
		if query.Matches(entry.pet) {
			list = append(list, entry.project())
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func (s *storedPet) project() *pettypes.PetProjection {
	return projection.New(s.pet.Clone(), s.metadata.CreatedAt, s.metadata.UpdatedAt)
}
