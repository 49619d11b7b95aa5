package models

import "gorm.io/gorm"

// TransactionStatus defines the status of a ledger transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an append-only ledger entry. Rows are created once and never
// mutated. Both counterparties are account numbers; the platform side is
// always the reserved platform account.
type Transaction struct {
	gorm.Model
	TransactionID string            `gorm:"unique;not null" json:"transactionId"`
	FromAccount   string            `gorm:"type:varchar(50);not null;index" json:"from"`
	ToAccount     string            `gorm:"type:varchar(50);not null;index" json:"to"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Description   string            `gorm:"type:text" json:"description"`
	Status        TransactionStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
}
