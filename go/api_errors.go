package shelterserver

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	adoptionapp "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petapp "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	shelterapp "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/application"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
	userapp "github.com/Apurer/go-gin-shelter-server/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-shelter-server/internal/shared/errors"
)

// responder maps every domain error the handlers can see to a problem document.
var responder = apierrors.NewResponder("",
	apierrors.Is(apierrors.ErrNotFound,
		petports.ErrNotFound, shelterports.ErrNotFound, adoptionports.ErrNotFound, userports.ErrNotFound),
	apierrors.Is(apierrors.ErrUnauthorized,
		petapp.ErrUnauthenticated, adoptionapp.ErrUnauthenticated, userapp.ErrAuthentication),
	apierrors.Is(apierrors.ErrForbidden, petapp.ErrForbidden, adoptionapp.ErrForbidden),
	apierrors.Is(apierrors.ErrPreconditionFailed, petapp.ErrPrecondition),
	apierrors.Is(apierrors.ErrConflict,
		petapp.ErrConflict, adoptionports.ErrDecisionConflict, userports.ErrUsernameTaken, shelterports.ErrAlreadyExists),
	apierrors.Is(apierrors.ErrValidation,
		petapp.ErrInvalidInput, adoptionapp.ErrInvalidInput, userapp.ErrInvalidInput, shelterapp.ErrInvalidInput),
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

// respondBindError reports per-field failures for validator errors and a bad request otherwise.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describeFieldError(fe)
		}
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL"
	case "oneof":
		return fmt.Sprintf("select one of: %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return id, true
}
