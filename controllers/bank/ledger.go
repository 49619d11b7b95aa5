package bankController

import (
	"errors"
	"lms/models"
	"lms/utils"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("transfer amount must not be negative")
)

// Transfer moves amount from one account to another and appends exactly one
// ledger entry. The debit and its sufficient-funds check happen in a single
// conditional UPDATE evaluated by the database, so concurrent transfers on
// the same account cannot overdraw it or lose updates.
//
// Transfer performs no transaction management of its own: callers that need
// the two balance writes and the ledger entry to be atomic (they all should)
// must run it inside db.Transaction, which also makes a failed transfer roll
// back any surrounding workflow writes.
func Transfer(tx *gorm.DB, fromAccount, toAccount string, amount float64, description string) (float64, *models.Transaction, error) {
	if amount < 0 {
		return 0, nil, ErrInvalidAmount
	}

	var from models.BankAccount
	if err := tx.Where("account_number = ? AND is_deleted = ?", fromAccount, false).First(&from).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrAccountNotFound
		}
		return 0, nil, err
	}

	var to models.BankAccount
	if err := tx.Where("account_number = ? AND is_deleted = ?", toAccount, false).First(&to).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrAccountNotFound
		}
		return 0, nil, err
	}

	// Conditional debit: the balance check and the decrement are one
	// statement, so a concurrent debit cannot slip in between them.
	res := tx.Model(&models.BankAccount{}).
		Where("account_number = ? AND balance >= ? AND is_deleted = ?", fromAccount, amount, false).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return 0, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil, ErrInsufficientFunds
	}

	if err := tx.Model(&models.BankAccount{}).
		Where("account_number = ?", toAccount).
		Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return 0, nil, err
	}

	transaction := models.Transaction{
		TransactionID: utils.GenerateTransactionID(),
		FromAccount:   fromAccount,
		ToAccount:     toAccount,
		Amount:        amount,
		Description:   description,
		Status:        models.TransactionStatusCompleted,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return 0, nil, err
	}

	if err := tx.Where("account_number = ?", fromAccount).First(&from).Error; err != nil {
		return 0, nil, err
	}

	return from.Balance, &transaction, nil
}
