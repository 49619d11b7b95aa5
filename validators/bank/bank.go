package bankValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation: " + fe.Tag()
		}
		return errors
	}
	errors["request"] = err.Error()
	return errors
}

// Setup validates the bank account setup request
func Setup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AccountNumber string `json:"accountNumber" validate:"required,min=4"`
			Secret        string `json:"secret" validate:"required,min=4"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedBankSetup", reqData)
		return c.Next()
	}
}

// Transaction validates a peer transfer request
func Transaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ToUserID    uint    `json:"toUserId" validate:"required"`
			Amount      float64 `json:"amount" validate:"required,gt=0"`
			Description string  `json:"description"`
			Secret      string  `json:"secret" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedTransaction", reqData)
		return c.Next()
	}
}

// TargetUser validates the :userId route parameter
func TargetUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("userId"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}
