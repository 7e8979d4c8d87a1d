package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "local-auth-service/internal/domain/user"
	apperrors "local-auth-service/pkg/errors"
	"local-auth-service/pkg/security"
)

// Config controls optional hardening of the login flow.
type Config struct {
	// VerifyPassword stores a bcrypt hash at signup and checks it at login.
	// When false, login matches on email alone.
	VerifyPassword bool
	BcryptCost     int
}

// Usecase implements Service on top of a user store and a session store.
type Usecase struct {
	users    UserStore
	sessions SessionStore
	log      *zap.Logger
	validate *validator.Validate

	verifyPassword bool
	hasher         *security.PasswordHasher
	newID          func() string

	// signupMu makes the duplicate check and the append in Signup one step.
	signupMu sync.Mutex
}

var _ Service = (*Usecase)(nil)

// New creates a new instance of Usecase.
func New(users UserStore, sessions SessionStore, log *zap.Logger, cfg Config) *Usecase {
	return &Usecase{
		users:          users,
		sessions:       sessions,
		log:            log,
		validate:       validator.New(),
		verifyPassword: cfg.VerifyPassword,
		hasher:         security.NewPasswordHasher(cfg.BcryptCost),
		newID:          uuid.NewString,
	}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// Signup registers a new user and logs them in.
func (uc *Usecase) Signup(ctx context.Context, in SignupRequest) (*UserResponse, error) {
	uc.log.Info("signing up user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	uc.signupMu.Lock()
	defer uc.signupMu.Unlock()

	users := uc.users.ListUsers(ctx)
	ids := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.Email == in.Email {
			uc.log.Warn("email already exists", zap.String("email", in.Email), zap.String("existing_id", u.ID))
			return nil, apperrors.ErrDuplicateEmail
		}
		ids[u.ID] = struct{}{}
	}

	record := domain.User{
		ID:    uc.allocateID(ids),
		Name:  in.Name,
		Email: in.Email,
	}
	if uc.verifyPassword {
		hash, err := uc.hasher.Hash(in.Password)
		if errors.Is(err, security.ErrPasswordTooLong) {
			uc.log.Warn("password too long to hash", zap.Int("bytes", len(in.Password)))
			return nil, apperrors.NewValidationError("Password", err.Error())
		}
		if err != nil {
			uc.log.Error("failed to hash password", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to create account", err)
		}
		record.PasswordHash = hash
	}

	if err := uc.users.AddUser(ctx, record); err != nil {
		uc.log.Error("failed to add user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	// No rollback: if this fails the account exists but nobody is logged in.
	if err := uc.sessions.Set(ctx, record.Public()); err != nil {
		uc.log.Error("user stored but session not set", zap.String("id", record.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("user signed up", zap.String("id", record.ID))
	return toResponse(record), nil
}

// allocateID returns a fresh id not present in taken.
func (uc *Usecase) allocateID(taken map[string]struct{}) string {
	for {
		id := uc.newID()
		if _, dup := taken[id]; !dup && id != "" {
			return id
		}
		uc.log.Warn("generated id collides, retrying", zap.String("id", id))
	}
}

// Login finds the user by exact email and makes them the current session.
func (uc *Usecase) Login(ctx context.Context, in LoginRequest) (*UserResponse, error) {
	uc.log.Info("logging in user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	var found *domain.User
	users := uc.users.ListUsers(ctx)
	for i := range users {
		if users[i].Email == in.Email {
			found = &users[i]
			break
		}
	}
	if found == nil {
		uc.log.Warn("no user with email", zap.String("email", in.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	if uc.verifyPassword {
		if found.PasswordHash == "" {
			uc.log.Warn("account has no stored password hash", zap.String("id", found.ID))
			return nil, apperrors.ErrInvalidCredentials
		}
		if err := uc.hasher.Compare(found.PasswordHash, in.Password); err != nil {
			if !errors.Is(err, security.ErrPasswordMismatch) {
				uc.log.Error("failed to verify password", zap.String("id", found.ID), zap.Error(err))
			} else {
				uc.log.Warn("password mismatch", zap.String("id", found.ID))
			}
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	if err := uc.sessions.Set(ctx, found.Public()); err != nil {
		uc.log.Error("failed to set session", zap.String("id", found.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("user logged in", zap.String("id", found.ID))
	return toResponse(*found), nil
}

// Logout clears the current session.
func (uc *Usecase) Logout(ctx context.Context) error {
	if err := uc.sessions.Clear(ctx); err != nil {
		uc.log.Error("failed to logout", zap.Error(err))
		return err
	}

	uc.log.Info("user logged out")
	return nil
}

// GetCurrentUser returns the logged-in user, or nil when logged out.
func (uc *Usecase) GetCurrentUser(ctx context.Context) *UserResponse {
	u := uc.sessions.Current(ctx)
	if u == nil {
		return nil
	}
	return toResponse(*u)
}
