package model

import (
	"strings"
	"time"
)

// Role is the closed set of staff roles. There is no hierarchy beyond the
// admin/staff split: admins can additionally manage accounts and templates.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole normalizes free-form role input. Anything unrecognized becomes
// the least-privileged role.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "administrator":
		return RoleAdmin
	default:
		return RoleStaff
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	Suspended    bool      `json:"suspended"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthUser is the public projection of a user record: everything a client may
// see, never the password hash.
type AuthUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	Suspended   bool   `json:"suspended"`
}

func (u User) Public() AuthUser {
	return AuthUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Suspended:   u.Suspended,
	}
}

type AuthUserList struct {
	Users []AuthUser `json:"users"`
}

// LoginResult is the login response body. The session token itself travels in
// the cookie, not the body.
type LoginResult struct {
	User      AuthUser `json:"user"`
	ExpiresIn int64    `json:"expires_in"`
}
