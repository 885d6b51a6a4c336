package models

import "encoding/json"

// Role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PermissionAll grants every capability.
const PermissionAll = "all"

// User is an account that can open sessions. Password holds a bcrypt hash.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// GetID returns the record id.
func (u User) GetID() string { return u.ID }

// IsAdmin reports whether the user bypasses permission checks.
func (u User) IsAdmin() bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == PermissionAll {
			return true
		}
	}
	return false
}

// HasPermission reports whether the user holds the capability.
func (u User) HasPermission(permission string) bool {
	if u.IsAdmin() {
		return true
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// UnmarshalJSON applies defaults for fields absent in older stored data.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := alias{Role: RoleUser}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux)
	u.Permissions = nonNil(u.Permissions)
	return nil
}

// UserInfo is the client-facing view of a user; it never carries the password.
type UserInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Info returns the client-facing view of the user.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: nonNil(u.Permissions),
	}
}
