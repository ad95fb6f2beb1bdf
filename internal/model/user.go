package model

import "time"

// User represents an account that can sign in
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Hash      *string    `json:"-"` // Never expose password hash
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	LoginOn   *time.Time `json:"login_on,omitempty"`
}

// TokenClaims represents the identity carried by an access token
type TokenClaims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is returned by the session endpoint
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenPair is returned by sign up, login and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// SignUpRequest represents a new participant account
type SignUpRequest struct {
	Name             string          `json:"name" validate:"required,max=100"`
	Email            string          `json:"email" validate:"required,email"`
	Phone            string          `json:"phone" validate:"required,min=10,max=15"`
	Password         string          `json:"password" validate:"required,min=6,max=128"`
	Role             ParticipantRole `json:"role" validate:"required,oneof=university outside"`
	UniversityRollNo string          `json:"university_roll_no,omitempty" validate:"required_if=Role university"`
	CollegeName      string          `json:"college_name,omitempty" validate:"required_if=Role outside"`
}

// Validate checks the sign up request
func (r *SignUpRequest) Validate() []FieldError {
	return ValidateStruct(r)
}

// LoginRequest represents email and password credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login request
func (r *LoginRequest) Validate() []FieldError {
	return ValidateStruct(r)
}

// RefreshRequest carries a refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
