package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption applications in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type applicationRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PetID     int64     `gorm:"column:pet_id;index"`
	UserID    int64     `gorm:"column:user_id;index"`
	FullName  string    `gorm:"column:full_name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (applicationRecord) TableName() string { return "adoption_applications" }

// Save inserts an application. Applications are immutable, so an existing ID is rejected.
func (r *Repository) Save(ctx context.Context, app *domain.Application) (*ports.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("cannot save nil application")
	}
	if app.ID != 0 {
		return nil, errors.New("applications cannot be updated")
	}
	record := applicationRecord{
		PetID:     app.PetID,
		UserID:    app.UserID,
		FullName:  app.FullName,
		Email:     app.Email,
		Phone:     app.Phone,
		Message:   app.Message,
		CreatedAt: app.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	app.ID = record.ID
	return record.toProjection(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record applicationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// ListForShelterOwner joins applications to pets and shelters and keeps those run by userID.
func (r *Repository) ListForShelterOwner(ctx context.Context, userID int64) ([]*ports.ApplicationProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []applicationRecord
	err := r.db.WithContext(ctx).
		Table("adoption_applications").
		Select("adoption_applications.*").
		Joins("JOIN pets ON pets.id = adoption_applications.pet_id").
		Joins("JOIN shelters ON shelters.id = pets.shelter_id").
		Where("shelters.user_id = ?", userID).
		Order("adoption_applications.id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]*ports.ApplicationProjection, 0, len(records))
	for i := range records {
		out = append(out, records[i].toProjection())
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func (rec applicationRecord) toProjection() *ports.ApplicationProjection {
	app := &domain.Application{
		ID:        rec.ID,
		PetID:     rec.PetID,
		UserID:    rec.UserID,
		FullName:  rec.FullName,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Message:   rec.Message,
		CreatedAt: rec.CreatedAt,
	}
	return projection.New(app, rec.CreatedAt, rec.CreatedAt)
}
