package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps applications in memory. The owner listing resolves
// pet and shelter through the given repositories.
type Repository struct {
	mu       sync.RWMutex
	apps     map[int64]*domain.Application
	nextID   int64
	pets     petports.Repository
	shelters shelterports.Repository
}

func NewRepository(pets petports.Repository, shelters shelterports.Repository) *Repository {
	return &Repository{apps: map[int64]*domain.Application{}, pets: pets, shelters: shelters}
}

func (r *Repository) Save(_ context.Context, app *domain.Application) (*ports.ApplicationProjection, error) {
	if app == nil {
		return nil, errors.New("cannot save nil application")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := app.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.apps[clone.ID] = clone
	app.ID = clone.ID
	return project(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.ApplicationProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return project(app), nil
}

func (r *Repository) ListForShelterOwner(ctx context.Context, userID int64) ([]*ports.ApplicationProjection, error) {
	r.mu.RLock()
	apps := make([]*domain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, app.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })

	owners := map[int64]int64{}
	out := make([]*ports.ApplicationProjection, 0)
	for _, app := range apps {
		owner, ok := owners[app.PetID]
		if !ok {
			var err error
			owner, err = r.ownerOf(ctx, app.PetID)
			if err != nil {
				return nil, err
			}
			owners[app.PetID] = owner
		}
		if owner == userID {
			out = append(out, project(app))
		}
	}
	return out, nil
}

// ownerOf returns the user running the pet's shelter, or 0 when the chain is broken.
func (r *Repository) ownerOf(ctx context.Context, petID int64) (int64, error) {
	pet, err := r.pets.GetByID(ctx, petID)
	if errors.Is(err, petports.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	shelter, err := r.shelters.GetByID(ctx, pet.Entity.ShelterID)
	if errors.Is(err, shelterports.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return shelter.Entity.UserID, nil
}

func project(app *domain.Application) *ports.ApplicationProjection {
	return projection.New(app.Clone(), app.CreatedAt, app.CreatedAt)
}
