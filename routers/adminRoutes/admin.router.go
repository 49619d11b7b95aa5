package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/transactions", middleware.JWTMiddleware, adminControllers.GetAllTransactions)
	adminGroup.Get("/stats", middleware.JWTMiddleware, adminControllers.GetPlatformStats)
}
