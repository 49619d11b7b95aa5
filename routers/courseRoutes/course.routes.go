package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/instructor/:userId", middleware.JWTMiddleware, validators.TargetUser(), controllers.GetInstructorCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/", middleware.JWTMiddleware, validators.Upload(), controllers.UploadCourse)
	courseGroup.Put("/:id/materials", middleware.JWTMiddleware, validators.CourseID(), validators.MaterialsUpdate(), controllers.UpdateCourseMaterials)
}
