package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/memory"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application"
	petdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	sheltermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/memory"
	shelterapp "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/application"
	shelterdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/domain"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

const ownerID int64 = 10

var (
	owner     = auth.Viewer{UserID: ownerID, Username: "staff", IsShelter: true}
	applicant = auth.Viewer{UserID: 42, Username: "jane"}
	details   = domain.ApplicantDetails{FullName: "Jane Doe", Email: "jane@example.com", Message: "Please"}
)

type fixture struct {
	svc     *Service
	apps    *adoptionmemory.Repository
	pets    *petmemory.Repository
	shelter *shelterdomain.Shelter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pets := petmemory.NewRepository()
	shelterRepo := sheltermemory.NewRepository()
	shelters := shelterapp.NewService(shelterRepo)
	opened, err := shelters.Open(context.Background(), shelterports.OpenShelterInput{UserID: ownerID, Name: "Happy Tails"})
	require.NoError(t, err)

	f := &fixture{
		apps:    adoptionmemory.NewRepository(pets, shelterRepo),
		pets:    pets,
		shelter: opened.Entity,
	}
	petService := petapp.NewService(pets, shelterRepo)
	f.svc = NewService(f.apps, petService, shelters, WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
	return f
}

func (f *fixture) pet(t *testing.T, status petdomain.Status) *petdomain.Pet {
	t.Helper()
	pet, err := petdomain.NewPet(f.shelter.ID, "Rex")
	require.NoError(t, err)
	pet.Status = status
	_, err = f.pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return pet
}

func (f *fixture) submit(t *testing.T, petID int64) *ports.ApplicationProjection {
	t.Helper()
	app, err := f.svc.Submit(context.Background(), ports.SubmitInput{PetID: petID, Viewer: applicant, ApplicantDetails: details})
	require.NoError(t, err)
	return app
}

func (f *fixture) decide(t *testing.T, appID int64, decision domain.Decision) (*ports.DecisionResult, error) {
	t.Helper()
	cmd, err := f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: appID, Viewer: owner, Decision: decision})
	require.NoError(t, err)
	return f.svc.ApplyDecision(context.Background(), *cmd)
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdoptable)

	app := f.submit(t, pet.ID)
	require.NotZero(t, app.Entity.ID)
	assert.Equal(t, pet.ID, app.Entity.PetID)
	assert.Equal(t, applicant.UserID, app.Entity.UserID)
	assert.Equal(t, "Jane Doe", app.Entity.FullName)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), app.Entity.CreatedAt)
}

func TestSubmit_UnknownPetCreatesNothing(t *testing.T) {
	f := newFixture(t)

	for _, viewer := range []auth.Viewer{applicant, {}} {
		_, err := f.svc.Submit(context.Background(), ports.SubmitInput{PetID: 404, Viewer: viewer, ApplicantDetails: details})
		require.ErrorIs(t, err, petports.ErrNotFound)
	}
	_, err := f.apps.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSubmit_Errors(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdoptable)

	_, err := f.svc.Submit(context.Background(), ports.SubmitInput{PetID: pet.ID, ApplicantDetails: details})
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Submit(context.Background(), ports.SubmitInput{PetID: pet.ID, Viewer: applicant, ApplicantDetails: domain.ApplicantDetails{Email: "a@b"}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyFullName)
}

func TestPrepareSubmission(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdoptable)

	loaded, err := f.svc.PrepareSubmission(context.Background(), pet.ID)
	require.NoError(t, err)
	require.Equal(t, "Rex", loaded.Entity.Name)

	_, err = f.svc.PrepareSubmission(context.Background(), 999)
	require.ErrorIs(t, err, petports.ErrNotFound)
}

func TestApprove_AdoptsPetAndKeepsApplication(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusPendingAdoption)
	app := f.submit(t, pet.ID)

	result, err := f.decide(t, app.Entity.ID, domain.DecisionApprove)
	require.NoError(t, err)
	require.Equal(t, petdomain.StatusAdopted, result.Status)

	stored, err := f.pets.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	require.Equal(t, petdomain.StatusAdopted, stored.Entity.Status)

	after, err := f.apps.GetByID(context.Background(), app.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, app.Entity, after.Entity)
}

func TestReject_ReturnsPetToAdoptable(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdopted)
	app := f.submit(t, pet.ID)

	result, err := f.decide(t, app.Entity.ID, domain.DecisionReject)
	require.NoError(t, err)
	require.Equal(t, petdomain.StatusAdoptable, result.Status)

	after, err := f.apps.GetByID(context.Background(), app.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, app.Entity, after.Entity)
}

func TestApprove_AlreadyAdoptedConflicts(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdopted)
	app := f.submit(t, pet.ID)

	_, err := f.decide(t, app.Entity.ID, domain.DecisionApprove)
	require.ErrorIs(t, err, ports.ErrDecisionConflict)
}

func TestAuthorizeDecision(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdoptable)
	app := f.submit(t, pet.ID)

	cmd, err := f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: app.Entity.ID, Viewer: owner, Decision: "approve"})
	require.NoError(t, err)
	require.Equal(t, ports.DecisionCommand{ApplicationID: app.Entity.ID, PetID: pet.ID, Decision: domain.DecisionApprove}, *cmd)

	_, err = f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: app.Entity.ID, Decision: domain.DecisionApprove})
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: app.Entity.ID, Viewer: applicant, Decision: domain.DecisionApprove})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: 999, Viewer: owner, Decision: domain.DecisionReject})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = f.svc.AuthorizeDecision(context.Background(), ports.DecideInput{ApplicationID: app.Entity.ID, Viewer: owner, Decision: "maybe"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestQueue(t *testing.T) {
	f := newFixture(t)
	pet := f.pet(t, petdomain.StatusAdoptable)
	first := f.submit(t, pet.ID)
	second := f.submit(t, pet.ID)

	entries, err := f.svc.Queue(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.Entity.ID, entries[0].Application.Entity.ID)
	assert.Equal(t, second.Entity.ID, entries[1].Application.Entity.ID)
	assert.Equal(t, pet.ID, entries[0].Pet.Entity.ID)

	entries, err = f.svc.Queue(context.Background(), applicant)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = f.svc.Queue(context.Background(), auth.Viewer{})
	require.ErrorIs(t, err, ErrUnauthenticated)
}
