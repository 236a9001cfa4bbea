package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashbook/internal/models"
)

func TestCreateExpenseSubtractsFromBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "70.00")
}

func TestCreateIncomeAddsToBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordIncome,
		Amount:     amount("25.50"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "125.50")
}

func TestTransferDoesNotMoveBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordTransfer,
		Amount:     amount("40.00"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "100.00")
}

func TestCreateThenDeleteIsBalanceIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	require.NoError(t, svc.Delete(rec))

	requireBalance(t, db, account.ID, "100.00")

	var count int64
	db.Model(&models.Record{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateAmountAdjustsByDelta(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")

	t.Run("expense grows", func(t *testing.T) {
		account := seedAccount(t, db, user, "A", "100.00")
		rec := &models.Record{OwnerID: user.ID, RecordType: models.RecordExpense, Amount: amount("30.00"), AccountID: &account.ID}
		require.NoError(t, svc.Create(rec))

		rec.Amount = amount("50.00")
		require.NoError(t, svc.Update(rec))
		requireBalance(t, db, account.ID, "50.00")
	})

	t.Run("expense shrinks", func(t *testing.T) {
		account := seedAccount(t, db, user, "B", "100.00")
		rec := &models.Record{OwnerID: user.ID, RecordType: models.RecordExpense, Amount: amount("30.00"), AccountID: &account.ID}
		require.NoError(t, svc.Create(rec))

		rec.Amount = amount("10.00")
		require.NoError(t, svc.Update(rec))
		requireBalance(t, db, account.ID, "90.00")
	})

	t.Run("income grows", func(t *testing.T) {
		account := seedAccount(t, db, user, "C", "100.00")
		rec := &models.Record{OwnerID: user.ID, RecordType: models.RecordIncome, Amount: amount("30.00"), AccountID: &account.ID}
		require.NoError(t, svc.Create(rec))

		rec.Amount = amount("45.00")
		require.NoError(t, svc.Update(rec))
		requireBalance(t, db, account.ID, "145.00")
	})

	t.Run("income shrinks", func(t *testing.T) {
		account := seedAccount(t, db, user, "D", "100.00")
		rec := &models.Record{OwnerID: user.ID, RecordType: models.RecordIncome, Amount: amount("30.00"), AccountID: &account.ID}
		require.NoError(t, svc.Create(rec))

		rec.Amount = amount("20.00")
		require.NoError(t, svc.Update(rec))
		requireBalance(t, db, account.ID, "120.00")
	})
}

// The documented lifecycle: open with 100, spend 30, correct to 50, undo.
func TestCheckingAccountScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "70.00")

	rec.Amount = amount("50.00")
	require.NoError(t, svc.Update(rec))
	requireBalance(t, db, account.ID, "50.00")

	require.NoError(t, svc.Delete(rec))
	requireBalance(t, db, account.ID, "100.00")
}

func TestAmountBelowMinimumRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	for _, amt := range []string{"0", "-5.00", "0.001"} {
		rec := &models.Record{
			OwnerID:    user.ID,
			RecordType: models.RecordExpense,
			Amount:     amount(amt),
			AccountID:  &account.ID,
		}
		assert.ErrorIs(t, svc.Create(rec), ErrAmountTooSmall, "amount %s", amt)
	}
	requireBalance(t, db, account.ID, "100.00")
}

func TestRecordWithoutAccountIsBalanceNeutral(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "100.00")

	rec.Amount = amount("60.00")
	require.NoError(t, svc.Update(rec))
	require.NoError(t, svc.Delete(rec))
	requireBalance(t, db, account.ID, "100.00")
}

func TestVanishedAccountFailsMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")

	missing := uint(9999)
	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
		AccountID:  &missing,
	}
	assert.ErrorIs(t, svc.Create(rec), ErrAccountNotFound)

	var count int64
	db.Model(&models.Record{}).Count(&count)
	assert.Equal(t, int64(0), count, "failed create must not persist the record")
}

// Changing only the type leaves the balance untouched: the update rule feeds
// amount deltas alone into the account.
func TestUpdateTypeChangeDoesNotTouchBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecordService(db)
	user := seedUser(t, db, "ana")
	account := seedAccount(t, db, user, "Checking", "100.00")

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("30.00"),
		AccountID:  &account.ID,
	}
	require.NoError(t, svc.Create(rec))
	requireBalance(t, db, account.ID, "70.00")

	rec.RecordType = models.RecordIncome
	require.NoError(t, svc.Update(rec))
	requireBalance(t, db, account.ID, "70.00")

	var stored models.Record
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, models.RecordIncome, stored.RecordType)
}
