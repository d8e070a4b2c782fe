package types

import "github.com/Apurer/go-gin-shelter-server/internal/shared/auth"

// ListPetsInput is the catalog query. Filter values are raw form input.
type ListPetsInput struct {
	ShelterID *int64
	Species   string
	Gender    string
	Size      string
}

// PetDetailInput loads one pet for a viewer.
type PetDetailInput struct {
	ID     int64
	Viewer auth.Viewer
}

// PetIdentifier references a pet by its aggregate ID.
type PetIdentifier struct {
	ID int64
}
