package models

import "time"

// ============================================================
// User Model
// ============================================================

type Role string

const (
	RoleClient   Role = "client"
	RoleDesigner Role = "designer"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleDesigner
}

type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
