package mapper

import (
	"time"

	sheltermapper "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/http/mapper"
	userdomain "github.com/Apurer/go-gin-shelter-server/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
)

// RegisterForm is the sign-up payload.
type RegisterForm struct {
	Username       string `form:"username" json:"username" binding:"required,max=150"`
	Email          string `form:"email" json:"email" binding:"omitempty,email"`
	Password       string `form:"password" json:"password" binding:"required,min=8"`
	IsShelter      bool   `form:"is_shelter" json:"is_shelter"`
	ShelterName    string `form:"shelter_name" json:"shelter_name" binding:"required_if=IsShelter true,max=200"`
	ShelterAddress string `form:"shelter_address" json:"shelter_address"`
	ShelterPhone   string `form:"shelter_phone" json:"shelter_phone"`
}

// LoginForm carries credentials.
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// User represents the transport-level user payload. The password hash is never exposed.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	IsShelter bool   `json:"isShelter"`
}

// Registration is the sign-up response.
type Registration struct {
	User    User                   `json:"user"`
	Shelter *sheltermapper.Shelter `json:"shelter"`
}

// Session is the login response.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

func ToRegisterInput(form RegisterForm) userports.RegisterInput {
	return userports.RegisterInput{
		Username:       form.Username,
		Email:          form.Email,
		Password:       form.Password,
		IsShelter:      form.IsShelter,
		ShelterName:    form.ShelterName,
		ShelterAddress: form.ShelterAddress,
		ShelterPhone:   form.ShelterPhone,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{ID: user.ID, Username: user.Username, Email: user.Email, IsShelter: user.IsShelter}
}

func FromRegistration(r *userports.Registration) Registration {
	return Registration{User: FromDomainUser(r.User), Shelter: sheltermapper.FromDomainShelter(r.Shelter)}
}

func FromLogin(r *userports.LoginResult) Session {
	return Session{Token: r.Token, ExpiresAt: r.ExpiresAt, User: FromDomainUser(r.User)}
}
