package courseController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrNotEnrolled      = errors.New("not enrolled in this course")
	ErrAlreadyCompleted = errors.New("course already completed")
)

// issueCertificate marks the enrollment complete and creates the certificate
// record, atomically. A second call for the same pair fails on the completed
// flag and creates nothing.
func issueCertificate(db *gorm.DB, learnerID, courseID uint) (*models.Certificate, error) {
	var enrollment models.Enrollment
	if err := db.Where("learner_id = ? AND course_id = ?", learnerID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	if enrollment.Completed {
		return nil, ErrAlreadyCompleted
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, err
	}
	var learner models.User
	if err := db.Where("id = ? AND is_deleted = ?", learnerID, false).First(&learner).Error; err != nil {
		return nil, err
	}

	certificate := models.Certificate{
		CertificateID:  utils.GenerateCertificateID(),
		LearnerID:      learnerID,
		LearnerName:    learner.Name,
		CourseID:       courseID,
		CourseTitle:    course.Title,
		InstructorName: course.InstructorName,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional flip of the completed flag: the second of two
		// concurrent completion calls matches no row and issues nothing.
		res := tx.Model(&models.Enrollment{}).
			Where("id = ? AND completed = ?", enrollment.ID, false).
			Updates(map[string]interface{}{
				"completed":    true,
				"progress":     100,
				"completed_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		return tx.Create(&certificate).Error
	})
	if err != nil {
		return nil, err
	}

	return &certificate, nil
}

// CompleteCourse marks the current learner's enrollment complete and issues
// the certificate
func CompleteCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		CourseID uint `json:"courseId" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	certificate, err := issueCertificate(database.Database.Db, userId, reqData.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, ErrAlreadyCompleted):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already completed!", nil)
		default:
			log.Printf("Error issuing certificate for user %d course %d: %v", userId, reqData.CourseID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course!", nil)
		}
	}

	go func(email, name, title, certID string) {
		if err := utils.SendCertificateEmail(email, name, title, certID); err != nil {
			log.Printf("Error sending certificate email to %s: %v", email, err)
		}
	}(user.Email, user.Name, certificate.CourseTitle, certificate.CertificateID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Congratulations! You have completed the course.", fiber.Map{
		"certificate": certificate,
	})
}

// GetLearnerCertificates lists a learner's certificates, newest first
func GetLearnerCertificates(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetUserId := c.Locals("targetUserID").(int)

	var requester models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&requester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if uint(targetUserId) != userId && requester.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own certificates!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("learner_id = ?", targetUserId).
		Order("created_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
