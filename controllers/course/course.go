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
	"gorm.io/gorm"
)

// MaterialInput is the wire shape of one material in upload/update requests
type MaterialInput struct {
	Type    string `json:"type" validate:"required,oneof=VIDEO AUDIO TEXT MCQ"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// GetAllCourses lists the whole catalog with materials in course order
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns one course with its materials
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course": course,
	})
}

// GetInstructorCourses lists all courses owned by one instructor
func GetInstructorCourses(c *fiber.Ctx) error {
	instructorID := c.Locals("targetUserID").(int)

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", instructorID, false).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// UploadCourse creates a course for the current instructor and pays the fixed
// upload bonus from the platform account
func UploadCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can upload courses!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpload").(*struct {
		Title       string          `json:"title" validate:"required,min=3"`
		Description string          `json:"description"`
		Price       float64         `json:"price" validate:"gte=0"`
		Materials   []MaterialInput `json:"materials" validate:"dive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, payment, err := createCourseWithBonus(database.Database.Db, &user, reqData.Title, reqData.Description, reqData.Price, reqData.Materials)
	if err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course uploaded successfully!", fiber.Map{
		"course":  course,
		"payment": payment,
	})
}

// createCourseWithBonus persists the course, then pays the upload bonus.
// A missing instructor or platform account skips the bonus but keeps the
// course; a bonus transfer failure does the same.
func createCourseWithBonus(db *gorm.DB, instructor *models.User, title, description string, price float64, materials []MaterialInput) (*models.Course, float64, error) {
	course := models.Course{
		Title:          title,
		Description:    description,
		Price:          price,
		InstructorID:   instructor.ID,
		InstructorName: instructor.Name,
		Materials:      buildMaterials(0, materials),
	}

	if err := db.Create(&course).Error; err != nil {
		return nil, 0, err
	}

	if !instructor.HasBankAccount() {
		log.Printf("Instructor %d has no bank account, skipping upload bonus for course %d", instructor.ID, course.ID)
		return &course, 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := bankController.Transfer(tx, config.AppConfig.PlatformAccount, instructor.AccountNumber,
			config.CourseUploadBonus, "Payment for uploading course: "+title)
		return err
	})
	if err != nil {
		if errors.Is(err, bankController.ErrAccountNotFound) || errors.Is(err, bankController.ErrInsufficientFunds) {
			log.Printf("Skipping upload bonus for course %d: %v", course.ID, err)
			return &course, 0, nil
		}
		return nil, 0, err
	}

	return &course, config.CourseUploadBonus, nil
}

// buildMaterials converts wire materials into ordered rows
func buildMaterials(courseID uint, inputs []MaterialInput) []models.Material {
	materials := make([]models.Material, len(inputs))
	for i, m := range inputs {
		materials[i] = models.Material{
			CourseID:     courseID,
			Position:     i,
			MaterialType: m.Type,
			Title:        m.Title,
			Content:      m.Content,
			URL:          m.URL,
		}
	}
	return materials
}

// UpdateCourseMaterials replaces a course's materials wholesale. Only the
// owning instructor may edit them.
func UpdateCourseMaterials(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedMaterialsUpdate").(*struct {
		Materials []MaterialInput `json:"materials" validate:"required,dive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own courses!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		materials := buildMaterials(course.ID, reqData.Materials)
		if len(materials) == 0 {
			return nil
		}
		return tx.Create(&materials).Error
	})
	if err != nil {
		log.Printf("Error updating course materials: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update materials!", nil)
	}

	if err := database.Database.Db.Preload("Materials", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&course, course.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch updated course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course materials updated successfully!", fiber.Map{
		"course": course,
	})
}
