package shelterserver

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handlers registered on the router.
type ApiHandleFunctions struct {
	PetAPI      PetAPI
	AdoptionAPI AdoptionAPI
	ShelterAPI  ShelterAPI
	UserAPI     UserAPI
	// Sessions resolves session tokens; when nil every request is anonymous.
	Sessions Authenticator
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the shelter routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	registerFormTagNames()
	if handleFunctions.Sessions != nil {
		router.Use(SessionMiddleware(handleFunctions.Sessions))
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},

		{"ListPets", http.MethodGet, "/pets", handleFunctions.PetAPI.ListPets},
		{"AdmitPet", http.MethodPost, "/pets", handleFunctions.PetAPI.AdmitPet},
		{"GetPet", http.MethodGet, "/pets/:petId", handleFunctions.PetAPI.GetPet},
		{"EditPetForm", http.MethodGet, "/pets/:petId/edit", handleFunctions.PetAPI.EditPetForm},
		{"EditPet", http.MethodPost, "/pets/:petId/edit", handleFunctions.PetAPI.EditPet},
		{"ListShelterPets", http.MethodGet, "/shelters/:shelterId/pets", handleFunctions.PetAPI.ListShelterPets},

		{"GetShelter", http.MethodGet, "/shelters/:shelterId", handleFunctions.ShelterAPI.GetShelter},

		{"AdoptionForm", http.MethodGet, "/pets/:petId/adopt", handleFunctions.AdoptionAPI.AdoptionForm},
		{"SubmitAdoption", http.MethodPost, "/pets/:petId/adopt", handleFunctions.AdoptionAPI.SubmitAdoption},
		{"AdoptionSuccess", http.MethodGet, "/adoptions/success", handleFunctions.AdoptionAPI.AdoptionSuccess},
		{"AdoptionQueue", http.MethodGet, "/adoptions", handleFunctions.AdoptionAPI.AdoptionQueue},
		{"ApproveApplication", http.MethodPost, "/adoptions/:applicationId/approve", handleFunctions.AdoptionAPI.ApproveApplication},
		{"RejectApplication", http.MethodPost, "/adoptions/:applicationId/reject", handleFunctions.AdoptionAPI.RejectApplication},

		{"RegisterUser", http.MethodPost, "/users", handleFunctions.UserAPI.Register},
		{"LoginUser", http.MethodPost, "/users/login", handleFunctions.UserAPI.Login},
		{"LogoutUser", http.MethodPost, "/users/logout", handleFunctions.UserAPI.Logout},
	}
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var tagNamesOnce sync.Once

// registerFormTagNames makes validation errors report form field names instead of Go field names.
func registerFormTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
}
