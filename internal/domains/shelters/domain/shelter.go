package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("shelter name is required")
	ErrMissingOwner = errors.New("shelter must be owned by a user")
)

// Shelter is the organisation that houses pets. Each shelter is run by exactly one user.
type Shelter struct {
	ID      int64
	UserID  int64
	Name    string
	Address string
	Phone   string
}

// NewShelter creates a shelter owned by userID.
func NewShelter(userID int64, name string) (*Shelter, error) {
	if userID <= 0 {
		return nil, ErrMissingOwner
	}
	s := &Shelter{UserID: userID}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shelter) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Name = name
	return nil
}

// UpdateContact replaces the address and phone.
func (s *Shelter) UpdateContact(address, phone string) {
	s.Address = strings.TrimSpace(address)
	s.Phone = strings.TrimSpace(phone)
}

// OwnedBy reports whether userID runs this shelter.
func (s *Shelter) OwnedBy(userID int64) bool {
	return s != nil && userID > 0 && s.UserID == userID
}

// Clone returns a copy of the shelter.
func (s *Shelter) Clone() *Shelter {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
