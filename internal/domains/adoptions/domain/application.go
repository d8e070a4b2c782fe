package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingPet       = errors.New("application must reference a pet")
	ErrMissingApplicant = errors.New("application must reference a user")
	ErrEmptyFullName    = errors.New("full name is required")
	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrInvalidDecision  = errors.New("unknown decision")
)

// Application is a request by a user to adopt a pet. It carries no status:
// an application stays pending until a shelter decides on the pet itself.
type Application struct {
	ID        int64
	PetID     int64
	UserID    int64
	FullName  string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// ApplicantDetails is what the applicant fills in.
type ApplicantDetails struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

// NewApplication validates and builds an application.
func NewApplication(petID, userID int64, details ApplicantDetails, at time.Time) (*Application, error) {
	if petID <= 0 {
		return nil, ErrMissingPet
	}
	if userID <= 0 {
		return nil, ErrMissingApplicant
	}
	fullName := strings.TrimSpace(details.FullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	email := strings.TrimSpace(details.Email)
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	return &Application{
		PetID:     petID,
		UserID:    userID,
		FullName:  fullName,
		Email:     email,
		Phone:     strings.TrimSpace(details.Phone),
		Message:   strings.TrimSpace(details.Message),
		CreatedAt: at,
	}, nil
}

func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

// Decision is a shelter's verdict on an application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(value string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(value)))
	switch d {
	case DecisionApprove, DecisionReject:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDecision, value)
}
