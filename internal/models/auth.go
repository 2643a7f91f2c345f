package models

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest holds the self-registration payload.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by registration.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse returns the issued token and the public profile.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// ChangePasswordRequest payload for updating the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,nefield=OldPassword"`
}

// UserInfo describes a user without credentials.
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Identity is the caller resolved from a verified token.
type Identity struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}

// JWTClaims represents the session token payload: {user: {id, role}}.
type JWTClaims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}
