package shelterserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/http/mapper"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	pethttpmapper "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/http/mapper"
)

// AdoptionAPI serves the adoption form, the shelter queue, and decisions.
type AdoptionAPI struct {
	service   adoptionports.Service
	decisions adoptionports.DecisionOrchestrator
}

// NewAdoptionAPI wires the service. decisions may be nil, in which case decisions run inline.
func NewAdoptionAPI(service adoptionports.Service, decisions adoptionports.DecisionOrchestrator) AdoptionAPI {
	return AdoptionAPI{service: service, decisions: decisions}
}

// Get /pets/:petId/adopt
// Returns the pet the adoption form is for
func (api *AdoptionAPI) AdoptionForm(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.PrepareSubmission(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.SubmissionForm{Pet: pethttpmapper.FromProjection(pet)})
}

// Post /pets/:petId/adopt
// Submits an adoption application
func (api *AdoptionAPI) SubmitAdoption(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if _, err := api.service.PrepareSubmission(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	var form adoptionhttpmapper.ApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := api.service.Submit(c.Request.Context(), adoptionhttpmapper.ToSubmitInput(viewer(c), id, form)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/adoptions/success")
}

// Get /adoptions/success
func (api *AdoptionAPI) AdoptionSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, adoptionhttpmapper.Confirmation{Message: adoptionhttpmapper.SubmittedMessage})
}

// Get /adoptions
// Lists applications for pets in the requester's shelter
func (api *AdoptionAPI) AdoptionQueue(c *gin.Context) {
	entries, err := api.service.Queue(c.Request.Context(), viewer(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromQueue(entries))
}

// Post /adoptions/:applicationId/approve
func (api *AdoptionAPI) ApproveApplication(c *gin.Context) {
	api.decide(c, domain.DecisionApprove)
}

// Post /adoptions/:applicationId/reject
func (api *AdoptionAPI) RejectApplication(c *gin.Context) {
	api.decide(c, domain.DecisionReject)
}

func (api *AdoptionAPI) decide(c *gin.Context, decision domain.Decision) {
	id, ok := parseIDParam(c, "applicationId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cmd, err := api.service.AuthorizeDecision(ctx, adoptionhttpmapper.ToDecideInput(viewer(c), id, decision))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if api.decisions != nil {
		_, err = api.decisions.Decide(ctx, *cmd)
	} else {
		_, err = api.service.ApplyDecision(ctx, *cmd)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/adoptions")
}
