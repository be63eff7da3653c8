package repository

import (
	"context"
	"sync"
	"time"

	"voyago/internal/models"
)

// MemoryAccountRepository is an in-process store used by tests and local
// development without Postgres. The mutex makes the uniqueness check and
// insert a single atomic step, matching the database's unique index.
type MemoryAccountRepository struct {
	mu      sync.Mutex
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byID:    make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := NormalizeEmail(account.Email)
	if _, exists := r.byEmail[email]; exists {
		return ErrDuplicateEmail
	}

	account.Email = email
	r.byID[account.ID] = account
	r.byEmail[email] = account.ID
	return nil
}

func (r *MemoryAccountRepository) FindByEmail(_ context.Context, email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (r *MemoryAccountRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	account.LastLoginAt = &at
	r.byID[id] = account
	return nil
}

func (r *MemoryAccountRepository) CountAccounts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
