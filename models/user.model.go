package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleLearner    = "LEARNER"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	Name          string    `gorm:"default:''" json:"name"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"default:'LEARNER'" json:"role"`
	AccountNumber string    `gorm:"default:''" json:"accountNumber"`
	BankSecret    string    `gorm:"default:''" json:"-"` // bcrypt hash, never leaves the server
	LastLogin     time.Time `gorm:"default:NULL" json:"-"`
	IsDeleted     bool      `gorm:"default:false" json:"-"`
}

// HasBankAccount reports whether the user has linked a bank account
func (u *User) HasBankAccount() bool {
	return u.AccountNumber != ""
}
