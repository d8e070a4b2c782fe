package shelterserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-shelter-server/internal/shared/errors"
)

// UserAPI handles registration and sessions.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /users
// Registers a user, opening a shelter when requested
func (api *UserAPI) Register(c *gin.Context) {
	var form userhttpmapper.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.Register(c.Request.Context(), userhttpmapper.ToRegisterInput(form))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromRegistration(result))
}

// Post /users/login
// Starts a session and sets the session cookie
func (api *UserAPI) Login(c *gin.Context) {
	var form userhttpmapper.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, result.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, userhttpmapper.FromLogin(result))
}

// Post /users/logout
// Ends the current session
func (api *UserAPI) Logout(c *gin.Context) {
	token := sessionToken(c)
	if token == "" {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("no session"))
		return
	}
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
