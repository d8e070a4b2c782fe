package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptiondomain "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

func TestNewServicesInMemory(t *testing.T) {
	ctx := context.Background()
	services := NewServices(Config{}, nil, nil, nil)

	staff, err := services.Users.Register(ctx, userports.RegisterInput{
		Username: "staff", Password: "long-password", IsShelter: true, ShelterName: "Happy Tails",
	})
	require.NoError(t, err)
	require.NotNil(t, staff.Shelter)
	staffViewer := auth.Viewer{UserID: staff.User.ID, Username: "staff", IsShelter: true}

	name := "Rex"
	pet, err := services.Pets.Admit(ctx, pettypes.AdmitPetInput{
		Viewer:           staffViewer,
		PetMutationInput: pettypes.PetMutationInput{Name: &name},
	})
	require.NoError(t, err)
	assert.Equal(t, staff.Shelter.ID, pet.Entity.ShelterID)

	adopter, err := services.Users.Register(ctx, userports.RegisterInput{Username: "adopter", Password: "long-password"})
	require.NoError(t, err)
	application, err := services.Adoptions.Submit(ctx, adoptionports.SubmitInput{
		PetID:            pet.Entity.ID,
		Viewer:           auth.Viewer{UserID: adopter.User.ID, Username: "adopter"},
		ApplicantDetails: adoptiondomain.ApplicantDetails{FullName: "Jane Doe", Email: "jane@example.com"},
	})
	require.NoError(t, err)

	cmd, err := services.Adoptions.AuthorizeDecision(ctx, adoptionports.DecideInput{
		ApplicationID: application.Entity.ID,
		Viewer:        staffViewer,
		Decision:      adoptiondomain.DecisionApprove,
	})
	require.NoError(t, err)
	result, err := services.Adoptions.ApplyDecision(ctx, *cmd)
	require.NoError(t, err)
	assert.Equal(t, petdomain.StatusAdopted, result.Status)
}
