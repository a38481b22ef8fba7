package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"guestlist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher reverses the password so hashes are distinguishable but cheap.
type fakeHasher struct {
	saltErr error
	hashErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash == "hashed:"+salt+":"+password {
		return nil
	}
	return errors.New("hash mismatch")
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-for-%s", userID), nil
}

func newAuthFixture(t *testing.T) (domain.AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, &fakeHasher{}, &fakeIssuer{}, time.Hour)
	return svc, userRepo
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, userRepo := newAuthFixture(t)

		user, err := svc.SignUp(ctx, "  Ada@Example.COM ", "correcthorse", " Ada ")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada", user.Name)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "correcthorse", user.PasswordHash)
		assert.Len(t, userRepo.byID, 1)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		for _, email := range []string{"", "not-an-email", "missing@tld"} {
			_, err := svc.SignUp(ctx, email, "correcthorse", "Ada")
			require.ErrorIs(t, err, domain.ErrInvalidInput, "email %q", email)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.SignUp(ctx, "ada@example.com", "short", "Ada")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.SignUp(ctx, "ada@example.com", "correcthorse", "Ada")
		require.NoError(t, err)
		_, err = svc.SignUp(ctx, "ada@example.com", "correcthorse", "Ada Again")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		user, err := svc.SignUp(ctx, "ada@example.com", "correcthorse", "Ada")
		require.NoError(t, err)

		token, err := svc.Login(ctx, "ada@example.com", "correcthorse")
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+user.ID, token)
	})

	t.Run("email is normalized on login", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, err := svc.SignUp(ctx, "ada@example.com", "correcthorse", "Ada")
		require.NoError(t, err)

		_, err = svc.Login(ctx, " ADA@example.com ", "correcthorse")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, err := svc.SignUp(ctx, "ada@example.com", "correcthorse", "Ada")
		require.NoError(t, err)

		token, err := svc.Login(ctx, "ada@example.com", "wrongpassword")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		token, err := svc.Login(ctx, "nobody@example.com", "correcthorse")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}
