package adminController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin fetches the current user and checks the admin role
func requireAdmin(c *fiber.Ctx) (*models.User, error) {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if user.Role != models.RoleAdmin {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}
	return &user, nil
}

// GetAllTransactions lists the full ledger, newest first
func GetAllTransactions(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Transaction{})

	var total int64
	db.Count(&total)

	var transactions []models.Transaction
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPlatformStats aggregates the admin dashboard numbers. Everything is
// recomputed from the stores on each request.
func GetPlatformStats(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	db := database.Database.Db
	platformAccount := config.AppConfig.PlatformAccount

	var totalCourses, totalEnrollments, totalLearners, totalInstructors int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleLearner, false).Count(&totalLearners)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleInstructor, false).Count(&totalInstructors)

	// Revenue is everything paid into the platform account by someone else;
	// the seeded self-credit of the opening balance is not revenue.
	var totalRevenue float64
	db.Model(&models.Transaction{}).
		Where("to_account = ? AND from_account <> ?", platformAccount, platformAccount).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var platformBalance float64
	var account models.BankAccount
	if err := db.Where("account_number = ? AND is_deleted = ?", platformAccount, false).First(&account).Error; err == nil {
		platformBalance = account.Balance
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"totalCourses":     totalCourses,
			"totalEnrollments": totalEnrollments,
			"totalLearners":    totalLearners,
			"totalInstructors": totalInstructors,
			"totalRevenue":     totalRevenue,
			"platformBalance":  platformBalance,
		},
	})
}
