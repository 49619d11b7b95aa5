package models

import "gorm.io/gorm"

// BankAccount holds the balance for one account number. The balance never
// goes negative: every debit is a conditional update evaluated against the
// current balance by the database itself.
type BankAccount struct {
	gorm.Model
	AccountNumber string  `gorm:"unique;not null" json:"accountNumber"`
	UserID        uint    `gorm:"index;not null" json:"userId"`
	Balance       float64 `gorm:"not null;default:0" json:"balance"`
	IsDeleted     bool    `gorm:"default:false" json:"-"`
}
