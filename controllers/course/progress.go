package courseController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var ErrIndexOutOfRange = errors.New("material index out of range")

// getOrCreateProgress returns the progress record for the pair, creating a
// zeroed one on first access
func getOrCreateProgress(db *gorm.DB, learnerID, courseID uint) (*models.Progress, error) {
	var progress models.Progress
	err := db.Where("learner_id = ? AND course_id = ?", learnerID, courseID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.Progress{
		LearnerID: learnerID,
		CourseID:  courseID,
	}
	if err := progress.SetCompletedIndices([]int{}); err != nil {
		return nil, err
	}
	if err := db.Create(&progress).Error; err != nil {
		// A concurrent first access may have created the row; re-read it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("learner_id = ? AND course_id = ?", learnerID, courseID).First(&progress).Error; err != nil {
				return nil, err
			}
			return &progress, nil
		}
		return nil, err
	}
	return &progress, nil
}

// upsertProgress overwrites the stored index set and last-viewed index
// wholesale (last-writer-wins). Every index must address an existing material
// of the course.
func upsertProgress(db *gorm.DB, learnerID, courseID uint, completed []int, lastIndex int) (*models.Progress, error) {
	var materialCount int64
	if err := db.Model(&models.Material{}).Where("course_id = ?", courseID).Count(&materialCount).Error; err != nil {
		return nil, err
	}

	for _, idx := range completed {
		if idx < 0 || int64(idx) >= materialCount {
			return nil, ErrIndexOutOfRange
		}
	}
	if lastIndex < 0 || (materialCount > 0 && int64(lastIndex) >= materialCount) {
		return nil, ErrIndexOutOfRange
	}

	progress, err := getOrCreateProgress(db, learnerID, courseID)
	if err != nil {
		return nil, err
	}

	if err := progress.SetCompletedIndices(completed); err != nil {
		return nil, err
	}
	progress.LastAccessedIndex = lastIndex

	if err := db.Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgress fetches (or lazily creates) the current learner's progress for
// one course
func GetProgress(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	progress, err := getOrCreateProgress(database.Database.Db, userId, uint(courseID))
	if err != nil {
		log.Printf("Error fetching progress for user %d course %d: %v", userId, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress": progress,
	})
}

// UpdateProgress overwrites the current learner's progress for one course
func UpdateProgress(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgressUpdate").(*struct {
		CourseID           uint  `json:"courseId" validate:"required"`
		CompletedMaterials []int `json:"completedMaterials"`
		LastAccessedIndex  int   `json:"lastAccessedIndex" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	progress, err := upsertProgress(database.Database.Db, userId, reqData.CourseID, reqData.CompletedMaterials, reqData.LastAccessedIndex)
	if err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Material index out of range!", nil)
		}
		log.Printf("Error updating progress for user %d course %d: %v", userId, reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress": progress,
	})
}
