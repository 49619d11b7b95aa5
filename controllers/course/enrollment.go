package courseController

import (
	"errors"
	"lms/config"
	bankController "lms/controllers/bank"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrInvalidSecret   = errors.New("invalid bank secret")
	ErrNoBankAccount   = errors.New("bank account not linked")
)

// enrollResult bundles everything the enrollment response needs
type enrollResult struct {
	Enrollment   *models.Enrollment
	Payment      *models.Transaction
	RevenueShare *models.Transaction
	NewBalance   float64
}

// enrollLearner runs the paid-enrollment workflow: charge the learner into
// the platform account, create the enrollment, pay the instructor their
// revenue share. All three run in one database transaction, so a failure in
// any leg rolls back the others - a learner is never charged without an
// enrollment, and an enrollment never exists without the instructor's share
// having been paid.
func enrollLearner(db *gorm.DB, learner *models.User, course *models.Course, secret string) (*enrollResult, error) {
	var existing models.Enrollment
	if err := db.Where("learner_id = ? AND course_id = ?", learner.ID, course.ID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyEnrolled
	}

	if !learner.HasBankAccount() {
		return nil, ErrNoBankAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(learner.BankSecret), []byte(secret)); err != nil {
		return nil, ErrInvalidSecret
	}

	var instructor models.User
	if err := db.Where("id = ? AND is_deleted = ?", course.InstructorID, false).First(&instructor).Error; err != nil {
		return nil, err
	}
	if !instructor.HasBankAccount() {
		return nil, ErrNoBankAccount
	}

	platformAccount := config.AppConfig.PlatformAccount
	result := &enrollResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		newBalance, payment, err := bankController.Transfer(tx, learner.AccountNumber, platformAccount,
			course.Price, "Enrollment in "+course.Title)
		if err != nil {
			return err
		}
		result.NewBalance = newBalance
		result.Payment = payment

		enrollment := models.Enrollment{
			LearnerID: learner.ID,
			CourseID:  course.ID,
			Completed: false,
			Progress:  0,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			// The unique index owns the duplicate check: a concurrent
			// enrollment that won the race surfaces here, and the rollback
			// refunds the charge above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		result.Enrollment = &enrollment

		share := course.Price * config.InstructorRevenueShare
		_, shareTxn, err := bankController.Transfer(tx, platformAccount, instructor.AccountNumber,
			share, "Revenue share for "+course.Title+" enrollment")
		if err != nil {
			return err
		}
		result.RevenueShare = shareTxn

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EnrollInCourse enrolls the current learner into a course after charging
// its price through the ledger
func EnrollInCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var learner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		CourseID uint   `json:"courseId" validate:"required"`
		Secret   string `json:"secret" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	result, err := enrollLearner(database.Database.Db, &learner, &course, reqData.Secret)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		case errors.Is(err, ErrInvalidSecret):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid bank secret!", nil)
		case errors.Is(err, ErrNoBankAccount):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bank account not set up!", nil)
		case errors.Is(err, bankController.ErrInsufficientFunds):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient balance to enroll!", nil)
		case errors.Is(err, bankController.ErrAccountNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Bank account not found!", nil)
		default:
			log.Printf("Error enrolling user %d in course %d: %v", userId, course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", fiber.Map{
		"enrollment":   result.Enrollment,
		"transaction":  result.Payment,
		"revenueShare": result.RevenueShare,
		"newBalance":   result.NewBalance,
	})
}

// GetLearnerEnrollments lists a learner's enrollments with course summaries
func GetLearnerEnrollments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetUserId := c.Locals("targetUserID").(int)

	var requester models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&requester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if uint(targetUserId) != userId && requester.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseTitle       string  `json:"courseTitle"`
		CourseDescription string  `json:"courseDescription"`
		CoursePrice       float64 `json:"coursePrice"`
		CourseInstructor  string  `json:"courseInstructor"`
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("learner_id = ?", targetUserId).
		Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithCourse{
			Enrollment:        e,
			CourseTitle:       e.Course.Title,
			CourseDescription: e.Course.Description,
			CoursePrice:       e.Course.Price,
			CourseInstructor:  e.Course.InstructorName,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
