package bankRoutes

import (
	bankControllers "lms/controllers/bank"
	"lms/middleware"
	bankValidators "lms/validators/bank"

	"github.com/gofiber/fiber/v2"
)

func SetupBankRoutes(app *fiber.App) {
	bankGroup := app.Group("/bank")

	bankGroup.Post("/setup", middleware.JWTMiddleware, bankValidators.Setup(), bankControllers.SetupAccount)
	bankGroup.Get("/balance/:userId", middleware.JWTMiddleware, bankValidators.TargetUser(), bankControllers.GetBalance)
	bankGroup.Post("/transaction", middleware.JWTMiddleware, bankValidators.Transaction(), bankControllers.CreateTransaction)
	bankGroup.Get("/transactions/:userId", middleware.JWTMiddleware, bankValidators.TargetUser(), bankControllers.GetUserTransactions)
}
