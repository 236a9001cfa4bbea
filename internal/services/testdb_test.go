package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cashbook/internal/models"
)

var dbSeq int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// cache=shared keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.MethodOfPayment{},
		&models.Customer{},
		&models.Record{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAccount(t *testing.T, db *gorm.DB, owner *models.User, name, balance string) *models.Account {
	t.Helper()
	account := &models.Account{
		OwnerID:     owner.ID,
		Name:        name,
		AccountType: models.AccountBank,
		Balance:     decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id uint) *models.Account {
	t.Helper()
	var account models.Account
	require.NoError(t, db.First(&account, id).Error)
	return &account
}

func requireBalance(t *testing.T, db *gorm.DB, accountID uint, want string) {
	t.Helper()
	account := reloadAccount(t, db, accountID)
	require.Truef(t, account.Balance.Equal(decimal.RequireFromString(want)),
		"balance = %s, want %s", account.Balance, want)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
