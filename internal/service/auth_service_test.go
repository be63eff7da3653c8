package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"voyago/internal/config"
	"voyago/internal/repository"
	"voyago/internal/security"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret: "test-secret",
			TokenTTL:  24 * time.Hour,
		},
	}
}

func newTestService() (*AuthService, *repository.MemoryAccountRepository) {
	store := repository.NewMemoryAccountRepository()
	svc := NewAuthService(store, nil, testConfig(), zerolog.Nop())
	return svc, store
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	accountID, err := svc.Register(ctx, RegisterInput{
		Email:     "a@example.com",
		Password:  "Abc12345!",
		FirstName: "Ann",
	})
	require.NoError(t, err)
	require.NotEmpty(t, accountID)

	token, view, err := svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "Abc12345!"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, accountID, view.ID)
	require.Equal(t, "a@example.com", view.Email)

	gotID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, accountID, gotID)
}

func TestRegister_DuplicateEmailVariants(t *testing.T) {
	t.Parallel()
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:     "dup@example.com",
		Password:  "Abc12345!",
		FirstName: "First",
	})
	require.NoError(t, err)

	for _, variant := range []string{"dup@example.com", "DUP@Example.COM", "  dup@example.com  "} {
		_, err := svc.Register(ctx, RegisterInput{
			Email:     variant,
			Password:  "Abc12345!",
			FirstName: "Second",
		})
		require.ErrorIs(t, err, repository.ErrDuplicateEmail, "variant %q", variant)
	}

	count, err := store.CountAccounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	svc, store := newTestService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing first name", RegisterInput{Email: "a@example.com", Password: "Abc12345!"}},
		{"missing password", RegisterInput{Email: "a@example.com", FirstName: "Ann"}},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "Abc12345!", FirstName: "Ann"}},
		{"weak password", RegisterInput{Email: "a@example.com", Password: "abc12345", FirstName: "Ann"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	// No store mutation on any validation failure.
	count, err := store.CountAccounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestLogin_NoEnumerationSignal(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:     "known@example.com",
		Password:  "Abc12345!",
		FirstName: "Ann",
	})
	require.NoError(t, err)

	_, _, errWrongPassword := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "Wrong123!"})
	_, _, errUnknownEmail := svc.Login(ctx, LoginInput{Email: "unknown@example.com", Password: "Abc12345!"})

	require.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestLogin_UpdatesLastLogin(t *testing.T) {
	t.Parallel()
	svc, store := newTestService()
	ctx := context.Background()

	accountID, err := svc.Register(ctx, RegisterInput{
		Email:     "a@example.com",
		Password:  "Abc12345!",
		FirstName: "Ann",
	})
	require.NoError(t, err)

	account, err := store.GetByID(ctx, accountID)
	require.NoError(t, err)
	require.Nil(t, account.LastLoginAt)

	_, view, err := svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "Abc12345!"})
	require.NoError(t, err)
	require.NotNil(t, view.LastLogin)

	account, err = store.GetByID(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, account.LastLoginAt)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	expired, err := security.GenerateSessionToken("test-secret", "acct-1", -1*time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(expired)
	require.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestProfile_Idempotent(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	accountID, err := svc.Register(ctx, RegisterInput{
		Email:     "a@example.com",
		Password:  "Abc12345!",
		FirstName: "Ann",
		LastName:  "Lee",
		Phone:     "555-0100",
	})
	require.NoError(t, err)

	first, err := svc.Profile(ctx, accountID)
	require.NoError(t, err)
	second, err := svc.Profile(ctx, accountID)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, "Ann", first.FirstName)
	require.Equal(t, "Lee", first.LastName)
	require.Equal(t, "555-0100", first.Phone)
}

func TestProfile_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Profile(context.Background(), "missing-id")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}
