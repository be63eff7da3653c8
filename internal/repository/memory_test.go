package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"voyago/internal/models"
)

func TestMemory_CreateAndLookup(t *testing.T) {
	t.Parallel()
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := models.Account{
		ID:        "acct-1",
		Email:     "  Mixed.Case@Example.COM ",
		FirstName: "Ann",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.FindByEmail(ctx, "mixed.case@example.com")
	require.NoError(t, err)
	require.Equal(t, "acct-1", got.ID)
	require.Equal(t, "mixed.case@example.com", got.Email)

	got, err = repo.GetByID(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, "mixed.case@example.com", got.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemory_ConcurrentDuplicateInsert(t *testing.T) {
	t.Parallel()
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, models.Account{
				ID:        fmt.Sprintf("acct-%d", i),
				Email:     "same@example.com",
				FirstName: "Racer",
				CreatedAt: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	require.Equal(t, 1, succeeded)

	count, err := repo.CountAccounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestMemory_UpdateLastLogin(t *testing.T) {
	t.Parallel()
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Account{
		ID:        "acct-1",
		Email:     "a@example.com",
		FirstName: "Ann",
		CreatedAt: time.Now(),
	}))

	at := time.Now().Add(time.Minute)
	require.NoError(t, repo.UpdateLastLogin(ctx, "acct-1", at))

	got, err := repo.GetByID(ctx, "acct-1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	require.True(t, got.LastLoginAt.Equal(at))

	require.ErrorIs(t, repo.UpdateLastLogin(ctx, "missing", at), ErrAccountNotFound)
}
