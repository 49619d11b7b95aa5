package bankController

import (
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// initialBalanceForRole returns the opening balance credited at account setup
func initialBalanceForRole(role string) float64 {
	switch role {
	case models.RoleInstructor:
		return config.InstructorInitialBalance
	case models.RoleAdmin:
		return config.PlatformInitialBalance
	default:
		return config.LearnerInitialBalance
	}
}

// SetupAccount links a bank account to the current user and opens it with a
// role-based initial balance. The supplied secret is stored as a bcrypt hash.
func SetupAccount(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedBankSetup").(*struct {
		AccountNumber string `json:"accountNumber" validate:"required,min=4"`
		Secret        string `json:"secret" validate:"required,min=4"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Reject an account number already owned by someone else
	var existing models.BankAccount
	if err := db.Where("account_number = ? AND is_deleted = ?", reqData.AccountNumber, false).First(&existing).Error; err == nil {
		if existing.UserID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Account number already in use!", nil)
		}
	}

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(reqData.Secret), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing bank secret: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var account models.BankAccount
	err = db.Transaction(func(tx *gorm.DB) error {
		user.AccountNumber = reqData.AccountNumber
		user.BankSecret = string(hashedSecret)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if err := tx.Where("account_number = ? AND is_deleted = ?", reqData.AccountNumber, false).First(&account).Error; err == nil {
			return nil
		}

		account = models.BankAccount{
			AccountNumber: reqData.AccountNumber,
			UserID:        user.ID,
			Balance:       initialBalanceForRole(user.Role),
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		log.Printf("Error setting up bank account: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set up bank account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank account setup successful!", fiber.Map{
		"accountNumber": account.AccountNumber,
		"balance":       account.Balance,
	})
}

// GetBalance returns the balance of the given user's account. Learners and
// instructors can only read their own; admins can read anyone's.
func GetBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetUserId := c.Locals("targetUserID").(int)

	var requester models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&requester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	if uint(targetUserId) != userId && requester.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own balance!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if !user.HasBankAccount() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
	}

	var account models.BankAccount
	if err := database.Database.Db.Where("account_number = ? AND is_deleted = ?", user.AccountNumber, false).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched!", fiber.Map{
		"accountNumber": account.AccountNumber,
		"balance":       account.Balance,
	})
}

// CreateTransaction moves money from the current user to another user after
// verifying the sender's bank secret
func CreateTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var fromUser models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&fromUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedTransaction").(*struct {
		ToUserID    uint    `json:"toUserId" validate:"required"`
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		Description string  `json:"description"`
		Secret      string  `json:"secret" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !fromUser.HasBankAccount() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Set up your bank account first!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(fromUser.BankSecret), []byte(reqData.Secret)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid bank secret!", nil)
	}

	var toUser models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ToUserID, false).First(&toUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found!", nil)
	}
	if !toUser.HasBankAccount() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient has no bank account!", nil)
	}

	var newBalance float64
	var transaction *models.Transaction
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		newBalance, transaction, err = Transfer(tx, fromUser.AccountNumber, toUser.AccountNumber, reqData.Amount, reqData.Description)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance!", nil)
		case errors.Is(err, ErrAccountNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
		case errors.Is(err, ErrInvalidAmount):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid amount!", nil)
		default:
			log.Printf("Error processing transaction: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process transaction!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction successful!", fiber.Map{
		"transaction": transaction,
		"newBalance":  newBalance,
	})
}

// GetUserTransactions returns the transaction history touching the given
// user's account, newest first
func GetUserTransactions(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetUserId := c.Locals("targetUserID").(int)

	var requester models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&requester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	if uint(targetUserId) != userId && requester.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own transactions!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if !user.HasBankAccount() {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Transaction{}).
		Where("from_account = ? OR to_account = ?", user.AccountNumber, user.AccountNumber)

	var total int64
	db.Count(&total)

	var transactions []models.Transaction
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
