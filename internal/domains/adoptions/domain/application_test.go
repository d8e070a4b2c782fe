package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	app, err := NewApplication(4, 7, ApplicantDetails{FullName: "  Jane Doe ", Email: "jane@example.com", Message: " hi "}, at)
	require.NoError(t, err)
	require.Equal(t, int64(4), app.PetID)
	require.Equal(t, int64(7), app.UserID)
	require.Equal(t, "Jane Doe", app.FullName)
	require.Equal(t, "hi", app.Message)
	require.Equal(t, at, app.CreatedAt)
	require.Zero(t, app.ID)
}

func TestNewApplication_Invalid(t *testing.T) {
	valid := ApplicantDetails{FullName: "Jane", Email: "jane@example.com"}
	cases := []struct {
		name    string
		petID   int64
		userID  int64
		details ApplicantDetails
		err     error
	}{
		{"missing pet", 0, 1, valid, ErrMissingPet},
		{"missing user", 1, 0, valid, ErrMissingApplicant},
		{"blank name", 1, 1, ApplicantDetails{FullName: " ", Email: "a@b"}, ErrEmptyFullName},
		{"blank email", 1, 1, ApplicantDetails{FullName: "Jane"}, ErrEmptyEmail},
		{"bad email", 1, 1, ApplicantDetails{FullName: "Jane", Email: "jane"}, ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewApplication(tc.petID, tc.userID, tc.details, time.Now())
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" Approve")
	require.NoError(t, err)
	require.Equal(t, DecisionApprove, d)

	d, err = ParseDecision("reject")
	require.NoError(t, err)
	require.Equal(t, DecisionReject, d)

	_, err = ParseDecision("maybe")
	require.ErrorIs(t, err, ErrInvalidDecision)
}
