package auth

import domain "local-auth-service/internal/domain/user"

// SignupRequest represents the request payload for registering a new user.
type SignupRequest struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// UserResponse represents a user as returned to callers. It never carries credentials.
type UserResponse struct {
	ID    string
	Name  string
	Email string
}

func toResponse(u domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
