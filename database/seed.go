package database

import (
	"lms/config"
	"lms/models"
	"lms/utils"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData bootstraps demo users, accounts, courses and sample activity.
// It is idempotent: when any user row already exists, nothing is written.
// Invoked explicitly from scripts/seedDemoData.go, never at import time.
// Requires config.LoadConfig to have run.
func SeedDemoData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Println("Database already initialized, skipping seed.")
		return nil
	}

	log.Println("Seeding demo data...")

	platformAccount := config.AppConfig.PlatformAccount

	users := []models.User{
		{Name: "Alice Learner", Email: "alice@example.com", Password: hashSecret("pass123"), Role: models.RoleLearner},
		{Name: "Bob Student", Email: "bob@example.com", Password: hashSecret("pass123"), Role: models.RoleLearner},
		{Name: "John Doe", Email: "john@example.com", Password: hashSecret("pass123"), Role: models.RoleInstructor, AccountNumber: "ACC001", BankSecret: hashSecret("secret1")},
		{Name: "Jane Smith", Email: "jane@example.com", Password: hashSecret("pass123"), Role: models.RoleInstructor, AccountNumber: "ACC002", BankSecret: hashSecret("secret2")},
		{Name: "Bob Johnson", Email: "bob.j@example.com", Password: hashSecret("pass123"), Role: models.RoleInstructor, AccountNumber: "ACC003", BankSecret: hashSecret("secret3")},
		{Name: "Admin User", Email: "admin@lms.com", Password: hashSecret("admin123"), Role: models.RoleAdmin, AccountNumber: platformAccount, BankSecret: hashSecret("lms_secret")},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	accounts := []models.BankAccount{
		{AccountNumber: "ACC001", UserID: users[2].ID, Balance: config.InstructorInitialBalance},
		{AccountNumber: "ACC002", UserID: users[3].ID, Balance: config.InstructorInitialBalance},
		{AccountNumber: "ACC003", UserID: users[4].ID, Balance: config.InstructorInitialBalance},
		{AccountNumber: platformAccount, UserID: users[5].ID, Balance: config.PlatformInitialBalance},
	}
	if err := db.Create(&accounts).Error; err != nil {
		return err
	}

	courses := []models.Course{
		{
			Title: "Web Development Fundamentals", Description: "Learn HTML, CSS, and JavaScript basics",
			Price: 99, InstructorID: users[2].ID, InstructorName: users[2].Name,
			Materials: []models.Material{
				{Position: 0, MaterialType: models.MaterialTypeVideo, Title: "Introduction to Web Dev", URL: "video1.mp4"},
				{Position: 1, MaterialType: models.MaterialTypeText, Title: "HTML Basics", Content: "HTML is the foundation..."},
				{Position: 2, MaterialType: models.MaterialTypeMCQ, Title: "JavaScript Quiz", Content: "Quiz questions..."},
			},
		},
		{
			Title: "Data Structures & Algorithms", Description: "Master DSA for coding interviews",
			Price: 149, InstructorID: users[3].ID, InstructorName: users[3].Name,
			Materials: []models.Material{
				{Position: 0, MaterialType: models.MaterialTypeVideo, Title: "Arrays and Linked Lists", URL: "video2.mp4"},
				{Position: 1, MaterialType: models.MaterialTypeText, Title: "Algorithm Analysis", Content: "Time complexity..."},
			},
		},
		{
			Title: "Machine Learning Basics", Description: "Introduction to ML and AI concepts",
			Price: 199, InstructorID: users[4].ID, InstructorName: users[4].Name,
			Materials: []models.Material{
				{Position: 0, MaterialType: models.MaterialTypeVideo, Title: "ML Overview", URL: "video3.mp4"},
				{Position: 1, MaterialType: models.MaterialTypeText, Title: "Linear Regression", Content: "Linear regression is..."},
			},
		},
		{
			Title: "Database Management Systems", Description: "SQL and NoSQL databases explained",
			Price: 129, InstructorID: users[2].ID, InstructorName: users[2].Name,
			Materials: []models.Material{
				{Position: 0, MaterialType: models.MaterialTypeVideo, Title: "SQL Basics", URL: "video4.mp4"},
			},
		},
		{
			Title: "Cloud Computing Essentials", Description: "Learn AWS, Azure, and cloud architecture",
			Price: 179, InstructorID: users[3].ID, InstructorName: users[3].Name,
			Materials: []models.Material{
				{Position: 0, MaterialType: models.MaterialTypeVideo, Title: "Cloud Introduction", URL: "video5.mp4"},
			},
		},
	}
	if err := db.Create(&courses).Error; err != nil {
		return err
	}

	completedAt := users[0].CreatedAt
	enrollments := []models.Enrollment{
		{LearnerID: users[0].ID, CourseID: courses[0].ID, Completed: true, Progress: 100, CompletedAt: &completedAt},
		{LearnerID: users[0].ID, CourseID: courses[1].ID, Completed: false, Progress: 50},
		{LearnerID: users[1].ID, CourseID: courses[0].ID, Completed: false, Progress: 30},
	}
	if err := db.Create(&enrollments).Error; err != nil {
		return err
	}

	certificate := models.Certificate{
		CertificateID:  utils.GenerateCertificateID(),
		LearnerID:      users[0].ID,
		LearnerName:    users[0].Name,
		CourseID:       courses[0].ID,
		CourseTitle:    courses[0].Title,
		InstructorName: courses[0].InstructorName,
	}
	if err := db.Create(&certificate).Error; err != nil {
		return err
	}

	transactions := []models.Transaction{
		{TransactionID: utils.GenerateTransactionID(), FromAccount: platformAccount, ToAccount: "ACC001", Amount: config.InstructorInitialBalance, Description: "Initial balance for instructor", Status: models.TransactionStatusCompleted},
		{TransactionID: utils.GenerateTransactionID(), FromAccount: platformAccount, ToAccount: "ACC002", Amount: config.InstructorInitialBalance, Description: "Initial balance for instructor", Status: models.TransactionStatusCompleted},
		{TransactionID: utils.GenerateTransactionID(), FromAccount: platformAccount, ToAccount: platformAccount, Amount: config.PlatformInitialBalance, Description: "Initial platform balance", Status: models.TransactionStatusCompleted},
	}
	if err := db.Create(&transactions).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d accounts, %d courses.", len(users), len(accounts), len(courses))
	return nil
}

func hashSecret(plain string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing seed secret: %v", err)
		return ""
	}
	return string(hashed)
}
