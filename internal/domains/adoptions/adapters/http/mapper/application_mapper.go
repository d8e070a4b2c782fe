package mapper

import (
	"time"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petmapper "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/http/mapper"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// ApplicationForm is the adoption form.
type ApplicationForm struct {
	FullName string `form:"full_name" json:"full_name" binding:"required,max=200"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Phone    string `form:"phone" json:"phone" binding:"omitempty,max=20"`
	Message  string `form:"message" json:"message" binding:"omitempty,max=4000"`
}

// Application is the HTTP representation of an adoption application.
type Application struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"petId"`
	UserID    int64     `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// QueueEntry is one application with the pet it is for.
type QueueEntry struct {
	Application Application   `json:"application"`
	Pet         petmapper.Pet `json:"pet"`
}

// Queue is the shelter's pending applications.
type Queue struct {
	Applications []QueueEntry `json:"applications"`
}

// SubmissionForm is the adoption form context.
type SubmissionForm struct {
	Pet petmapper.Pet `json:"pet"`
}

// Confirmation is the static success page.
type Confirmation struct {
	Message string `json:"message"`
}

// SubmittedMessage is shown once an application has been received.
const SubmittedMessage = "Thank you! Your adoption application has been submitted. The shelter will contact you soon."

func ToSubmitInput(viewer auth.Viewer, petID int64, form ApplicationForm) ports.SubmitInput {
	return ports.SubmitInput{
		PetID:  petID,
		Viewer: viewer,
		ApplicantDetails: domain.ApplicantDetails{
			FullName: form.FullName,
			Email:    form.Email,
			Phone:    form.Phone,
			Message:  form.Message,
		},
	}
}

func ToDecideInput(viewer auth.Viewer, applicationID int64, decision domain.Decision) ports.DecideInput {
	return ports.DecideInput{ApplicationID: applicationID, Viewer: viewer, Decision: decision}
}

func FromProjection(p *ports.ApplicationProjection) Application {
	if p == nil || p.Entity == nil {
		return Application{}
	}
	a := p.Entity
	return Application{
		ID:        a.ID,
		PetID:     a.PetID,
		UserID:    a.UserID,
		FullName:  a.FullName,
		Email:     a.Email,
		Phone:     a.Phone,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}

func FromQueue(entries []*ports.QueueEntry) Queue {
	out := Queue{Applications: make([]QueueEntry, 0, len(entries))}
	for _, e := range entries {
		if e == nil {
			continue
		}
		out.Applications = append(out.Applications, QueueEntry{
			Application: FromProjection(e.Application),
			Pet:         petmapper.FromProjection(e.Pet),
		})
	}
	return out
}
