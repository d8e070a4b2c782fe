package mapper

import "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"

// Shelter is the HTTP representation of a shelter.
type Shelter struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// FromDomainShelter maps a shelter for responses. A nil shelter maps to nil.
func FromDomainShelter(s *domain.Shelter) *Shelter {
	if s == nil {
		return nil
	}
	return &Shelter{
		ID:      s.ID,
		UserID:  s.UserID,
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
	}
}
