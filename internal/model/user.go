package model

import "time"

// Role classifies a backend user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCounsellor Role = "COUNSELLOR"
)

// Permission codes checked by the RBAC middleware.
const (
	PermissionCollegesRead  = "colleges:read"
	PermissionCutoffsImport = "cutoffs:import"
)

// Permissions returns the permission codes a role carries.
func (r Role) Permissions() []string {
	switch r {
	case RoleAdmin:
		return []string{PermissionCollegesRead, PermissionCutoffsImport}
	case RoleCounsellor:
		return []string{PermissionCollegesRead}
	default:
		return nil
	}
}

// User is a backend account (counsellor or admin). Prospective students do
// not log in; counsellors run queries on their behalf.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
