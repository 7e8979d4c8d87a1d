package auth

import (
	"context"

	domain "local-auth-service/internal/domain/user"
)

// Service defines the interface for signup, login and session operations.
type Service interface {
	Signup(ctx context.Context, in SignupRequest) (*UserResponse, error)
	Login(ctx context.Context, in LoginRequest) (*UserResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) *UserResponse
}

// UserStore is the persisted collection of registered users.
type UserStore interface {
	ListUsers(ctx context.Context) []domain.User     // All users in insertion order; never fails
	AddUser(ctx context.Context, u domain.User) error // Append without uniqueness checks
}

// SessionStore holds the currently logged-in user.
type SessionStore interface {
	Current(ctx context.Context) *domain.User      // nil when logged out or unreadable
	Set(ctx context.Context, u domain.User) error // Overwrite with a copy of u
	Clear(ctx context.Context) error              // Remove; no-op when already empty
}
