package repository

import (
	"context"
	"testing"

	"tourney/repository/testutil"
	"tourney/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_GetByUserID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("wallet not found", func(t *testing.T) {
		wallet, err := repo.GetByUserID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("wallet found", func(t *testing.T) {
		created, err := repo.Create(ctx, 42, 1000)
		require.NoError(t, err)

		wallet, err := repo.GetByUserID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.Equal(t, int64(42), wallet.UserID)
		assert.Equal(t, int64(1000), wallet.Balance)
		assert.Equal(t, created.CreatedAt, wallet.CreatedAt)
	})
}

func TestWalletRepository_AddBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("increments the balance", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 100)
		require.NoError(t, err)

		err = repo.AddBalance(ctx, 1, 250)
		require.NoError(t, err)

		wallet, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(350), wallet.Balance)
	})

	t.Run("missing wallet", func(t *testing.T) {
		err := repo.AddBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("invalid amount", func(t *testing.T) {
		err := repo.AddBalance(ctx, 1, 0)
		assert.ErrorIs(t, err, service.ErrInvalidAmount)
	})
}

func TestWalletRepository_DeductBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("deducts when covered", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, 500)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 1, 200)
		require.NoError(t, err)

		wallet, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(300), wallet.Balance)
	})

	t.Run("insufficient balance leaves wallet untouched", func(t *testing.T) {
		_, err := repo.Create(ctx, 2, 100)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 2, 150)
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		wallet, err := repo.GetByUserID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(100), wallet.Balance)
	})

	t.Run("exact balance drains to zero", func(t *testing.T) {
		_, err := repo.Create(ctx, 3, 100)
		require.NoError(t, err)

		err = repo.DeductBalance(ctx, 3, 100)
		require.NoError(t, err)

		wallet, err := repo.GetByUserID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(0), wallet.Balance)
	})

	t.Run("missing wallet", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
