package bankController

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createAccount(t *testing.T, db *gorm.DB, number string, balance float64) {
	user := models.User{
		Name:          "Holder " + number,
		Email:         number + "@example.com",
		Password:      "x",
		AccountNumber: number,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.BankAccount{
		AccountNumber: number,
		UserID:        user.ID,
		Balance:       balance,
	}).Error)
}

func accountBalance(t *testing.T, db *gorm.DB, number string) float64 {
	var account models.BankAccount
	require.NoError(t, db.Where("account_number = ?", number).First(&account).Error)
	return account.Balance
}

func TestTransferMovesFunds(t *testing.T) {
	db := newTestDB(t, "ledger_transfer")
	createAccount(t, db, "ACC_A", 1000)
	createAccount(t, db, "ACC_B", 500)

	var newBalance float64
	var txn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		newBalance, txn, err = Transfer(tx, "ACC_A", "ACC_B", 250, "test transfer")
		return err
	})
	require.NoError(t, err)

	assert.InDelta(t, 750, newBalance, 0.001)
	assert.InDelta(t, 750, accountBalance(t, db, "ACC_A"), 0.001)
	assert.InDelta(t, 750, accountBalance(t, db, "ACC_B"), 0.001)

	require.NotNil(t, txn)
	assert.Equal(t, "ACC_A", txn.FromAccount)
	assert.Equal(t, "ACC_B", txn.ToAccount)
	assert.InDelta(t, 250, txn.Amount, 0.001)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	assert.NotEmpty(t, txn.TransactionID)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTransferInsufficientFunds(t *testing.T) {
	db := newTestDB(t, "ledger_insufficient")
	createAccount(t, db, "ACC_A", 100)
	createAccount(t, db, "ACC_B", 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_A", "ACC_B", 100.01, "too much")
		return err
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// The rollback must leave both balances and the ledger untouched
	assert.InDelta(t, 100, accountBalance(t, db, "ACC_A"), 0.001)
	assert.InDelta(t, 0, accountBalance(t, db, "ACC_B"), 0.001)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTransferExactBalance(t *testing.T) {
	db := newTestDB(t, "ledger_exact")
	createAccount(t, db, "ACC_A", 100)
	createAccount(t, db, "ACC_B", 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_A", "ACC_B", 100, "drain")
		return err
	})
	require.NoError(t, err)

	assert.InDelta(t, 0, accountBalance(t, db, "ACC_A"), 0.001)
	assert.InDelta(t, 100, accountBalance(t, db, "ACC_B"), 0.001)
}

func TestTransferUnknownAccount(t *testing.T) {
	db := newTestDB(t, "ledger_unknown")
	createAccount(t, db, "ACC_A", 1000)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_A", "ACC_MISSING", 10, "to nowhere")
		return err
	})
	require.ErrorIs(t, err, ErrAccountNotFound)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_MISSING", "ACC_A", 10, "from nowhere")
		return err
	})
	require.ErrorIs(t, err, ErrAccountNotFound)

	assert.InDelta(t, 1000, accountBalance(t, db, "ACC_A"), 0.001)
}

func TestTransferNegativeAmount(t *testing.T) {
	db := newTestDB(t, "ledger_negative")
	createAccount(t, db, "ACC_A", 1000)
	createAccount(t, db, "ACC_B", 500)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_A", "ACC_B", -5, "reverse raid")
		return err
	})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTransferZeroAmount(t *testing.T) {
	db := newTestDB(t, "ledger_zero")
	createAccount(t, db, "ACC_A", 1000)
	createAccount(t, db, "ACC_B", 500)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Transfer(tx, "ACC_A", "ACC_B", 0, "free course")
		return err
	})
	require.NoError(t, err)

	assert.InDelta(t, 1000, accountBalance(t, db, "ACC_A"), 0.001)
	assert.InDelta(t, 500, accountBalance(t, db, "ACC_B"), 0.001)

	// Zero-amount transfers still leave a ledger entry
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
