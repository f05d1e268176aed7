package trainingRoutes

import (
	controllers "vms/controllers/training"
	"vms/middleware"
	"vms/models"
	validators "vms/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminTrainingRoutes sets up catalog management and reporting routes
func SetupAdminTrainingRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	// Training CRUD
	adminGroup.Get("/trainings", middleware.JWTMiddleware, staff, controllers.AdminListTrainings)
	adminGroup.Post("/trainings", middleware.JWTMiddleware, adminOnly, validators.CreateTraining(), controllers.AdminCreateTraining)
	adminGroup.Put("/trainings/:id", middleware.JWTMiddleware, adminOnly, validators.UpdateTraining(), controllers.AdminUpdateTraining)
	adminGroup.Delete("/trainings/:id", middleware.JWTMiddleware, adminOnly, validators.TrainingID(), controllers.AdminDeleteTraining)
	adminGroup.Post("/trainings/:id/activate", middleware.JWTMiddleware, adminOnly, validators.TrainingID(), controllers.AdminSetTrainingActive(true))
	adminGroup.Post("/trainings/:id/deactivate", middleware.JWTMiddleware, adminOnly, validators.TrainingID(), controllers.AdminSetTrainingActive(false))

	// Contractor progress
	adminGroup.Get("/contractors/:contractorId/progress", middleware.JWTMiddleware, staff, validators.ContractorID(), controllers.GetTrainingProgress)

	// Dashboard
	adminGroup.Get("/dashboard/training-stats", middleware.JWTMiddleware, staff, controllers.AdminTrainingStats)
}
