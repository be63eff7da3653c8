package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"voyago/internal/config"
	"voyago/internal/ids"
	"voyago/internal/models"
	"voyago/internal/repository"
	"voyago/internal/security"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login failure never reveals whether the address is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AccountStore is the credential store the authenticator runs against.
// Create must treat the uniqueness check and insert as one atomic step.
type AccountStore interface {
	Create(ctx context.Context, account models.Account) error
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type AuthService struct {
	accounts AccountStore
	limiter  *LoginLimiter
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(accounts AccountStore, limiter *LoginLimiter, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		limiter:  limiter,
		cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register validates the input, hashes the password, and inserts the
// account. The plaintext password is discarded after hashing and is
// never logged. Returns the new account id.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		return "", &ValidationError{Field: "email", Message: "Email, password, and first name are required"}
	}
	if !validEmail(input.Email) {
		return "", &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	if !validPassword(input.Password) {
		return "", &ValidationError{
			Field:   "password",
			Message: "Password must be at least 8 characters and include uppercase, lowercase, number, and special character",
		}
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	account := models.Account{
		ID:           ids.New(),
		Email:        repository.NormalizeEmail(input.Email),
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return "", err
	}

	s.log.Info().Str("account_id", account.ID).Msg("account created")
	return account.ID, nil
}

type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

// Login verifies the credentials and issues a session token. The
// lastLogin update is best-effort; a failed write never blocks a
// successful login.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, models.AccountView, error) {
	if err := s.checkAttempts(ctx, input); err != nil {
		return "", models.AccountView{}, err
	}

	account, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.recordFailure(ctx, input)
			return "", models.AccountView{}, ErrInvalidCredentials
		}
		return "", models.AccountView{}, err
	}

	ok, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil || !ok {
		s.recordFailure(ctx, input)
		return "", models.AccountView{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.accounts.UpdateLastLogin(ctx, account.ID, now); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("update last login failed")
	} else {
		account.LastLoginAt = &now
	}

	token, err := security.GenerateSessionToken(s.cfg.Security.JWTSecret, account.ID, s.cfg.Security.TokenTTL)
	if err != nil {
		return "", models.AccountView{}, err
	}

	return token, account.View(), nil
}

// VerifyToken returns the account id embedded in a valid token. It does
// not load the account; callers re-fetch fresh profile data themselves.
func (s *AuthService) VerifyToken(token string) (string, error) {
	return security.ParseSessionToken(token, s.cfg.Security.JWTSecret)
}

// Profile returns the redacted view for the given account id.
func (s *AuthService) Profile(ctx context.Context, accountID string) (models.AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return models.AccountView{}, err
	}
	return account.View(), nil
}

func (s *AuthService) checkAttempts(ctx context.Context, input LoginInput) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, input.Email, input.ClientIP)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed")
		return nil
	}
	if !allowed {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, input LoginInput) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, input.Email, input.ClientIP); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}
