package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shelters in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The schema is owned by the migrations package.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type shelterRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	Phone     string    `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (shelterRecord) TableName() string { return "shelters" }

// Save inserts new shelters and upserts existing ones by id.
func (r *Repository) Save(ctx context.Context, shelter *domain.Shelter) (*ports.ShelterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, errors.New("cannot save nil shelter")
	}
	record := shelterRecord{
		ID:      shelter.ID,
		UserID:  shelter.UserID,
		Name:    shelter.Name,
		Address: shelter.Address,
		Phone:   shelter.Phone,
	}
	tx := r.db.WithContext(ctx)
	if record.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "name", "address", "phone", "updated_at"}),
		})
	}
	if err := tx.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	shelter.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.ShelterProjection, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) FindByUser(ctx context.Context, userID int64) (*ports.ShelterProjection, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*ports.ShelterProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shelterRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r shelterRecord) toProjection() *ports.ShelterProjection {
	return projection.New(&domain.Shelter{
		ID:      r.ID,
		UserID:  r.UserID,
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
	}, r.CreatedAt, r.UpdatedAt)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shelter repository not configured")
	}
	return nil
}
