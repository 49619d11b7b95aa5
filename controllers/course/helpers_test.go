package courseController

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBankSecret = "secret123"

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

func hashedSecret(t *testing.T) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(testBankSecret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// createUserWithAccount creates a user plus a funded bank account. An empty
// accountNumber creates the user without a linked account.
func createUserWithAccount(t *testing.T, db *gorm.DB, name, email, role, accountNumber string, balance float64) *models.User {
	user := models.User{
		Name:          name,
		Email:         email,
		Password:      "x",
		Role:          role,
		AccountNumber: accountNumber,
	}
	if accountNumber != "" {
		user.BankSecret = hashedSecret(t)
	}
	require.NoError(t, db.Create(&user).Error)

	if accountNumber != "" {
		require.NoError(t, db.Create(&models.BankAccount{
			AccountNumber: accountNumber,
			UserID:        user.ID,
			Balance:       balance,
		}).Error)
	}
	return &user
}

func createPlatformAccount(t *testing.T, db *gorm.DB, balance float64) *models.User {
	return createUserWithAccount(t, db, "Platform Admin", "admin@test.com",
		models.RoleAdmin, config.AppConfig.PlatformAccount, balance)
}

func createTestCourse(t *testing.T, db *gorm.DB, instructor *models.User, title string, price float64, materialCount int) *models.Course {
	course := models.Course{
		Title:          title,
		Price:          price,
		InstructorID:   instructor.ID,
		InstructorName: instructor.Name,
	}
	for i := 0; i < materialCount; i++ {
		course.Materials = append(course.Materials, models.Material{
			Position:     i,
			MaterialType: models.MaterialTypeVideo,
			Title:        "Lesson",
			URL:          "lesson.mp4",
		})
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func balanceOf(t *testing.T, db *gorm.DB, accountNumber string) float64 {
	var account models.BankAccount
	require.NoError(t, db.Where("account_number = ?", accountNumber).First(&account).Error)
	return account.Balance
}
