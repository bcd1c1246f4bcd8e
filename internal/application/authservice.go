package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// minPasswordLength matches the rule the back end enforces; checking locally
// saves a round trip.
const minPasswordLength = 6

// ErrPasswordMismatch indicates the confirmation field did not repeat the
// new password. Caught before any network call.
var ErrPasswordMismatch = errors.New("new passwords do not match")

// ErrPasswordTooShort indicates the new password is below the minimum length.
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)

// loginInput carries the login form values with their validation rules.
type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// registerInput carries the sign-up form values with their validation rules.
type registerInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

// AuthService drives login, registration, and password changes against the
// invoicing API and keeps the Session in step with the results.
type AuthService struct {
	api      driven.InvoiceAPI
	session  *Session
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(api driven.InvoiceAPI, session *Session) *AuthService {
	return &AuthService{
		api:      api,
		session:  session,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Login authenticates with the back end and installs the returned session.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return fmt.Errorf("invalid login input: %w", err)
	}

	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.session.Set(ctx, session)
	return nil
}

// Register creates a new account and installs the returned session, so a
// fresh registration is immediately logged in.
func (s *AuthService) Register(ctx context.Context, req driven.RegisterRequest) error {
	input := registerInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("invalid registration input: %w", err)
	}

	session, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}

	s.session.Set(ctx, session)
	return nil
}

// ChangePassword validates the new password locally, then asks the back end
// to change it. Local failures never reach the network.
func (s *AuthService) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	return s.api.ChangePassword(ctx, current, newPassword)
}

// Logout clears the session, in memory and persisted.
func (s *AuthService) Logout(ctx context.Context) {
	s.session.Clear(ctx)
}
