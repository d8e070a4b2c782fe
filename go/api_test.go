package shelterserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/memory"
	adoptionworkflows "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/workflows"
	adoptionapp "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/application"
	petmemory "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application"
	sheltermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/memory"
	shelterapp "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/application"
	usermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-shelter-server/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-shelter-server/internal/shared/errors"
)

type testApp struct {
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shelterRepo := sheltermemory.NewRepository()
	petRepo := petmemory.NewRepository()
	shelters := shelterapp.NewService(shelterRepo)
	pets := petapp.NewService(petRepo, shelterRepo)
	adoptions := adoptionapp.NewService(adoptionmemory.NewRepository(petRepo, shelterRepo), pets, shelters)
	users := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(), shelters)

	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		PetAPI:      NewPetAPI(pets),
		AdoptionAPI: NewAdoptionAPI(adoptions, adoptionworkflows.NewInlineDecisions(adoptions)),
		ShelterAPI:  NewShelterAPI(shelters),
		UserAPI:     NewUserAPI(users),
		Sessions:    users,
	})
	return &testApp{router: router}
}

func (a *testApp) do(t *testing.T, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// signUp registers and logs a user in, returning the session token.
func (a *testApp) signUp(t *testing.T, username, shelterName string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {"long-password"}, "email": {username + "@example.com"}}
	if shelterName != "" {
		form.Set("is_shelter", "true")
		form.Set("shelter_name", shelterName)
	}
	rec := a.do(t, http.MethodPost, "/users", "", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {username}, "password": {"long-password"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func (a *testApp) admit(t *testing.T, token string, form url.Values) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/pets", token, form)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, "/pets", rec.Header().Get("Location"))
}

type catalogBody struct {
	Pets []struct {
		ID        int64  `json:"id"`
		ShelterID int64  `json:"shelterId"`
		Name      string `json:"name"`
		Species   string `json:"species"`
		Status    string `json:"status"`
	} `json:"pets"`
	Shelter *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"shelter"`
}

func decodeCatalog(t *testing.T, rec *httptest.ResponseRecorder) catalogBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body catalogBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func problemFields(t *testing.T, problem apierrors.ProblemDetail) []string {
	t.Helper()
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok, "problem has no field errors")
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestHealthz(t *testing.T) {
	rec := newTestApp(t).do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmitPet_ForcesShelterAndListsIt(t *testing.T) {
	app := newTestApp(t)
	staff := app.signUp(t, "staff", "Happy Tails")

	app.admit(t, staff, url.Values{"name": {"Rex"}, "species": {"dog"}, "breeds": {"beagle"}})
	app.admit(t, staff, url.Values{"name": {"Tom"}, "species": {"cat"}})

	catalog := decodeCatalog(t, app.do(t, http.MethodGet, "/pets", "", nil))
	require.Len(t, catalog.Pets, 2)
	assert.Nil(t, catalog.Shelter)
	assert.Equal(t, "adoptable", catalog.Pets[0].Status)
	shelterID := catalog.Pets[0].ShelterID
	require.NotZero(t, shelterID)

	dogs := decodeCatalog(t, app.do(t, http.MethodGet, "/pets?species=dog", "", nil))
	require.Len(t, dogs.Pets, 1)
	assert.Equal(t, "Rex", dogs.Pets[0].Name)

	invalid := decodeCatalog(t, app.do(t, http.MethodGet, "/pets?species=dog&size=huge", "", nil))
	require.Len(t, invalid.Pets, 2)

	scoped := decodeCatalog(t, app.do(t, http.MethodGet, "/shelters/1/pets", "", nil))
	require.NotNil(t, scoped.Shelter)
	assert.Equal(t, "Happy Tails", scoped.Shelter.Name)
	require.Len(t, scoped.Pets, 2)
}

func TestAdmitPet_Errors(t *testing.T) {
	app := newTestApp(t)
	adopter := app.signUp(t, "adopter", "")
	staff := app.signUp(t, "staff", "Happy Tails")

	rec := app.do(t, http.MethodPost, "/pets", "", url.Values{"name": {"Rex"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	decodeProblem(t, rec)

	rec = app.do(t, http.MethodPost, "/pets", adopter, url.Values{"name": {"Rex"}})
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, apierrors.TypePrecondition, decodeProblem(t, rec).Type)

	rec = app.do(t, http.MethodPost, "/pets", staff, url.Values{"species": {"dragon"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"name", "species"}, problemFields(t, decodeProblem(t, rec)))

	catalog := decodeCatalog(t, app.do(t, http.MethodGet, "/pets", "", nil))
	require.Empty(t, catalog.Pets)
}

func TestScopedCatalog_UnknownShelter(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/shelters/99/pets", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	decodeProblem(t, rec)
}

func TestEditPet(t *testing.T) {
	app := newTestApp(t)
	staff := app.signUp(t, "staff", "Happy Tails")
	other := app.signUp(t, "other", "Other Shelter")
	app.admit(t, staff, url.Values{"name": {"Rex"}, "species": {"dog"}, "description": {"friendly"}})

	rec := app.do(t, http.MethodGet, "/pets/1/edit", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"description":"friendly"`)

	rec = app.do(t, http.MethodPost, "/pets/1/edit", other, url.Values{"name": {"Max"}})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/1/edit", staff, url.Values{"name": {"Max"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/pets/1", rec.Header().Get("Location"))

	rec = app.do(t, http.MethodGet, "/pets/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Max"`)
	assert.Contains(t, rec.Body.String(), `"species":"dog"`)
}

func TestUnknownPet_NotFoundBeforeFormValidation(t *testing.T) {
	app := newTestApp(t)
	staff := app.signUp(t, "staff", "Happy Tails")
	adopter := app.signUp(t, "adopter", "")

	rec := app.do(t, http.MethodPost, "/pets/404/adopt", "", url.Values{})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/404/adopt", adopter, url.Values{"full_name": {"Jane"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/404/edit", staff, url.Values{"species": {"dragon"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/adoptions", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Jane")
}

func TestAdoptionFlow(t *testing.T) {
	app := newTestApp(t)
	staff := app.signUp(t, "staff", "Happy Tails")
	other := app.signUp(t, "other", "Other Shelter")
	adopter := app.signUp(t, "adopter", "")
	app.admit(t, staff, url.Values{"name": {"Rex"}})

	application := url.Values{"full_name": {"Jane Doe"}, "email": {"jane@example.com"}, "message": {"Please"}}

	rec := app.do(t, http.MethodGet, "/pets/1/adopt", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/1/adopt", "", application)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/404/adopt", adopter, application)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets/1/adopt", adopter, url.Values{"full_name": {"Jane"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"email"}, problemFields(t, decodeProblem(t, rec)))

	rec = app.do(t, http.MethodPost, "/pets/1/adopt", adopter, application)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/adoptions/success", rec.Header().Get("Location"))

	rec = app.do(t, http.MethodGet, "/adoptions/success", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/adoptions", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue struct {
		Applications []struct {
			Application struct {
				ID       int64  `json:"id"`
				FullName string `json:"fullName"`
			} `json:"application"`
			Pet struct {
				Name string `json:"name"`
			} `json:"pet"`
		} `json:"applications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
	require.Len(t, queue.Applications, 1)
	assert.Equal(t, "Jane Doe", queue.Applications[0].Application.FullName)
	assert.Equal(t, "Rex", queue.Applications[0].Pet.Name)

	rec = app.do(t, http.MethodGet, "/adoptions", other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applications":[]`)

	rec = app.do(t, http.MethodGet, "/adoptions", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/adoptions/1/approve", other, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPost, "/adoptions/1/approve", staff, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/adoptions", rec.Header().Get("Location"))

	rec = app.do(t, http.MethodGet, "/pets/1", "", nil)
	assert.Contains(t, rec.Body.String(), `"status":"adopted"`)
	catalog := decodeCatalog(t, app.do(t, http.MethodGet, "/pets", "", nil))
	require.Empty(t, catalog.Pets)

	rec = app.do(t, http.MethodPost, "/adoptions/1/approve", staff, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, "/adoptions/1/reject", staff, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = app.do(t, http.MethodGet, "/pets/1", "", nil)
	assert.Contains(t, rec.Body.String(), `"status":"adoptable"`)

	rec = app.do(t, http.MethodPost, "/adoptions/77/reject", staff, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessions(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "staff", "Happy Tails")

	rec := app.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"staff"}, "password": {"wrong-password"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/users", "", url.Values{"username": {"staff"}, "password": {"long-password"}})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, "/users/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodPost, "/pets", token, url.Values{"name": {"Rex"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionCookie(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "staff", "Happy Tails")

	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(url.Values{"name": {"Rex"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
}
