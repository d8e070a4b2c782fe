package ports

import "context"

// OpenShelterInput carries the fields needed to open a shelter for a user.
type OpenShelterInput struct {
	UserID  int64
	Name    string
	Address string
	Phone   string
}

// Service exposes shelter lookups to the HTTP layer and the other domains.
type Service interface {
	Open(ctx context.Context, input OpenShelterInput) (*ShelterProjection, error)
	GetByID(ctx context.Context, id int64) (*ShelterProjection, error)
	ForUser(ctx context.Context, userID int64) (*ShelterProjection, error)
}
