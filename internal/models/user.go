package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleTeacher    UserRole = "teacher"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// Roles lists every known role.
var Roles = []UserRole{RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether r carries administrator privileges. A superadmin is
// an administrator with the additional right to remove other administrators.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsStaff reports whether r may author content.
func (r UserRole) IsStaff() bool {
	return r == RoleTeacher || r.IsAdmin()
}

// User represents an account stored in the users collection.
type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	PasswordHash       string    `bson:"password" json:"-"`
	Role               UserRole  `bson:"role" json:"role"`
	Department         string    `bson:"department,omitempty" json:"department,omitempty"`
	MustChangePassword bool      `bson:"must_change_password" json:"mustChangePassword"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}

// Info returns the public profile of the user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
