package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&shelterRecord{},
		&petRecord{},
		&applicationRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"column:username;size:150;uniqueIndex"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsShelter    bool      `gorm:"column:is_shelter;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Shelter schema mirrors the shelters Postgres adapter. One shelter per user.
type shelterRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex"`
	Name      string    `gorm:"column:name;size:200"`
	Address   string    `gorm:"column:address"`
	Phone     string    `gorm:"column:phone;size:20"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (shelterRecord) TableName() string { return "shelters" }

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	ShelterID   int64          `gorm:"column:shelter_id;index"`
	Name        string         `gorm:"column:name;size:100"`
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

// Application schema mirrors the adoptions Postgres adapter.
type applicationRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PetID     int64     `gorm:"column:pet_id;index"`
	UserID    int64     `gorm:"column:user_id;index"`
	FullName  string    `gorm:"column:full_name;size:200"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone;size:20"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (applicationRecord) TableName() string { return "adoption_applications" }
