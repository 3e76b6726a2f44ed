package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName,omitempty"`
	Role         string    `json:"role"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
