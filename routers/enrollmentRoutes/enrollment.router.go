package enrollmentRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment, progress and certificate routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments")
	enrollGroup.Post("/", middleware.JWTMiddleware, validators.Enrollment(), controllers.EnrollInCourse)
	enrollGroup.Get("/learner/:userId", middleware.JWTMiddleware, validators.TargetUser(), controllers.GetLearnerEnrollments)

	progressGroup := app.Group("/progress")
	progressGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetProgress)
	progressGroup.Post("/", middleware.JWTMiddleware, validators.ProgressUpdate(), controllers.UpdateProgress)

	certGroup := app.Group("/certificates")
	certGroup.Post("/", middleware.JWTMiddleware, validators.Completion(), controllers.CompleteCourse)
	certGroup.Get("/learner/:userId", middleware.JWTMiddleware, validators.TargetUser(), controllers.GetLearnerCertificates)
}
