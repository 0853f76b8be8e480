package domain

import "time"

const (
	SiteRoleUser  = "USER"
	SiteRoleAdmin = "ADMIN"
)

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Password  string    `json:"-"`
	SiteRole  string    `json:"site_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthPayload is returned by signup and login: the persisted user plus a
// freshly issued bearer token.
type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
