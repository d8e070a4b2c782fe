package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	ShelterID   int64          `gorm:"column:shelter_id;index"`
	Name        string         `gorm:"column:name"`
	Species     string         `gorm:"column:species;type:varchar(16);index"`
	Breeds      pq.StringArray `gorm:"column:breeds;type:text[]"`
	Age         int            `gorm:"column:age"`
	Gender      string         `gorm:"column:gender;type:varchar(16)"`
	Size        string         `gorm:"column:size;type:varchar(16)"`
	WeightKg    float64        `gorm:"column:weight_kg"`
	Photos      pq.StringArray `gorm:"column:photos;type:text[]"`
	Description string         `gorm:"column:description"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		ShelterID:   p.ShelterID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breeds:      copyStringArray(p.Breeds),
		Age:         p.Age,
		Gender:      string(p.Gender),
		Size:        string(p.Size),
		WeightKg:    p.WeightKg,
		Photos:      copyStringArray(p.Photos),
		Description: p.Description,
		Status:      string(p.Status),
	}
}

// Save inserts a new pet or updates an existing one by id.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	tx := r.db.WithContext(ctx)
	if record.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"shelter_id":  record.ShelterID,
				"name":        record.Name,
				"species":     record.Species,
				"breeds":      record.Breeds,
				"age":         record.Age,
				"gender":      record.Gender,
				"size":        record.Size,
				"weight_kg":   record.WeightKg,
				"photos":      record.Photos,
				"description": record.Description,
				"status":      record.Status,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		})
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Find returns the pets matching query ordered by id.
func (r *Repository) Find(ctx context.Context, query ports.PetQuery) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Model(&petRecord{})
	if query.ShelterID != nil {
		tx = tx.Where("shelter_id = ?", *query.ShelterID)
	}
	if len(query.Statuses) > 0 {
		statuses := make([]string, 0, len(query.Statuses))
		for _, s := range query.Statuses {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if query.Species != "" {
		tx = tx.Where("species = ?", string(query.Species))
	}
	if query.Gender != "" {
		tx = tx.Where("gender = ?", string(query.Gender))
	}
	if query.Size != "" {
		tx = tx.Where("size = ?", string(query.Size))
	}
	var records []petRecord
	if err := tx.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*pettypes.PetProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

func (r *petRecord) toProjection() *pettypes.PetProjection {
	pet := &domain.Pet{
		ID:          r.ID,
		ShelterID:   r.ShelterID,
		Name:        r.Name,
		Species:     domain.Species(r.Species),
		Age:         r.Age,
		Gender:      domain.Gender(r.Gender),
		Size:        domain.Size(r.Size),
		WeightKg:    r.WeightKg,
		Description: r.Description,
		Status:      domain.Status(r.Status),
	}
	if len(r.Breeds) > 0 {
		pet.Breeds = append([]string{}, r.Breeds...)
	}
	if len(r.Photos) > 0 {
		pet.Photos = append([]string{}, r.Photos...)
	}
	return projection.New(pet, r.CreatedAt, r.UpdatedAt)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func copyStringArray(values []string) pq.StringArray {
	if len(values) == 0 {
		return nil
	}
	dup := append([]string{}, values...)
	return pq.StringArray(dup)
}
