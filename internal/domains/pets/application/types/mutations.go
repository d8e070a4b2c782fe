package types

import "github.com/Apurer/go-gin-shelter-server/internal/shared/auth"

// PetMutationInput carries the editable pet attributes. Nil fields are left untouched.
type PetMutationInput struct {
	Name        *string
	Species     *string
	Breeds      *[]string
	Age         *int
	Gender      *string
	Size        *string
	WeightKg    *float64
	Photos      *[]string
	Description *string
}

// AdmitPetInput captures a pet intake by a shelter user.
type AdmitPetInput struct {
	Viewer auth.Viewer
	PetMutationInput
}

// EditPetInput overwrites a subset of an existing pet's attributes.
type EditPetInput struct {
	ID     int64
	Viewer auth.Viewer
	PetMutationInput
}
