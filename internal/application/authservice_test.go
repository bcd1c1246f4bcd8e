package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

func TestAuthServiceLogin(t *testing.T) {
	api := newFakeAPI()
	session := NewSession(&memSessionStore{})
	svc := NewAuthService(api, session)

	require.NoError(t, svc.Login(context.Background(), "admin@acme.test", "secret"))

	identity, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "admin@acme.test", identity.Email)
	assert.Equal(t, "tok-1", session.Token())
}

func TestAuthServiceLoginValidation(t *testing.T) {
	api := newFakeAPI()
	svc := NewAuthService(api, NewSession(&memSessionStore{}))

	t.Run("bad email", func(t *testing.T) {
		assert.Error(t, svc.Login(context.Background(), "not-an-email", "secret"))
	})
	t.Run("empty password", func(t *testing.T) {
		assert.Error(t, svc.Login(context.Background(), "a@b.test", ""))
	})

	// Neither attempt reached the network.
	assert.Empty(t, api.callNames())
}

func TestAuthServiceLoginFailureLeavesLoggedOut(t *testing.T) {
	api := newFakeAPI()
	api.failWith["Login"] = &driven.APIError{StatusCode: 401, Message: "Invalid credentials"}
	session := NewSession(&memSessionStore{})
	svc := NewAuthService(api, session)

	err := svc.Login(context.Background(), "admin@acme.test", "wrong")
	require.Error(t, err)

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	_, ok := session.Current()
	assert.False(t, ok)
	assert.Empty(t, session.Token())
}

func TestAuthServiceRegisterLogsIn(t *testing.T) {
	api := newFakeAPI()
	session := NewSession(&memSessionStore{})
	svc := NewAuthService(api, session)

	req := driven.RegisterRequest{
		Email: "new@acme.test", Password: "secret99", FirstName: "Boris", LastName: "Petrov",
	}
	require.NoError(t, svc.Register(context.Background(), req))

	_, ok := session.Current()
	assert.True(t, ok)
}

func TestAuthServiceChangePasswordLocalValidation(t *testing.T) {
	api := newFakeAPI()
	svc := NewAuthService(api, NewSession(&memSessionStore{}))
	ctx := context.Background()

	t.Run("confirmation mismatch", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "old", "newpassword", "different")
		assert.True(t, errors.Is(err, ErrPasswordMismatch))
	})

	t.Run("too short", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "old", "abc", "abc")
		assert.True(t, errors.Is(err, ErrPasswordTooShort))
	})

	// Local failures never reach the network.
	assert.Empty(t, api.callNames())

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, "old", "newpassword", "newpassword"))
		assert.Equal(t, []string{"ChangePassword"}, api.callNames())
	})
}
