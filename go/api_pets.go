package shelterserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

// PetAPI serves the catalog, pet pages, intake, and the editor.
type PetAPI struct {
	service petports.Service
}

func NewPetAPI(service petports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /pets
// Lists adoptable and pending pets, optionally filtered
func (api *PetAPI) ListPets(c *gin.Context) {
	api.list(c, nil)
}

// Get /shelters/:shelterId/pets
// Lists every pet of one shelter
func (api *PetAPI) ListShelterPets(c *gin.Context) {
	id, ok := parseIDParam(c, "shelterId")
	if !ok {
		return
	}
	api.list(c, &id)
}

func (api *PetAPI) list(c *gin.Context, shelterID *int64) {
	var query pethttpmapper.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	catalog, err := api.service.List(c.Request.Context(), pethttpmapper.ToListInput(shelterID, query))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromCatalog(catalog))
}

// Get /pets/:petId
// Shows one pet
func (api *PetAPI) GetPet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	detail, err := api.service.Detail(c.Request.Context(), pettypes.PetDetailInput{ID: id, Viewer: viewer(c)})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromDetail(detail))
}

// Post /pets
// Admits a pet into the requester's shelter
func (api *PetAPI) AdmitPet(c *gin.Context) {
	var form pethttpmapper.AdmitPetForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := api.service.Admit(c.Request.Context(), pethttpmapper.ToAdmitInput(viewer(c), form)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/pets")
}

// Get /pets/:petId/edit
// Returns the editor's initial values
func (api *PetAPI) EditPetForm(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	form, err := api.service.PrepareEdit(c.Request.Context(), pettypes.PetIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromEditForm(form))
}

// Post /pets/:petId/edit
// Overwrites the submitted pet fields
func (api *PetAPI) EditPet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if _, err := api.service.GetByID(c.Request.Context(), pettypes.PetIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	var form pethttpmapper.EditPetForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := api.service.Edit(c.Request.Context(), pethttpmapper.ToEditInput(viewer(c), id, form)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/pets/%d", id))
}
