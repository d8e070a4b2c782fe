package shelterserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sheltermapper "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/http/mapper"
	shelterports "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
)

// ShelterAPI exposes shelter lookups.
type ShelterAPI struct {
	service shelterports.Service
}

func NewShelterAPI(service shelterports.Service) ShelterAPI {
	return ShelterAPI{service: service}
}

// Get /shelters/:shelterId
func (api *ShelterAPI) GetShelter(c *gin.Context) {
	id, ok := parseIDParam(c, "shelterId")
	if !ok {
		return
	}
	shelter, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheltermapper.FromDomainShelter(shelter.Entity))
}
