package trainingRoutes

import (
	controllers "vms/controllers/training"
	"vms/middleware"
	"vms/models"
	validators "vms/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up the kiosk-facing training routes
func SetupTrainingRoutes(app *fiber.App) {
	kiosk := middleware.RequireRole(models.RoleContractor, models.RoleAdmin)

	// Catalog
	app.Get("/trainings", middleware.JWTMiddleware, controllers.ListTrainings)
	app.Get("/trainings/:id", middleware.JWTMiddleware, validators.TrainingID(), controllers.GetTraining)

	// Module completion and progress
	progressGroup := app.Group("/training-progress")
	progressGroup.Post("/:contractorId/complete", middleware.JWTMiddleware, kiosk, middleware.ContractorAccess("contractorId"), validators.CompleteTraining(), controllers.CompleteTraining)
	progressGroup.Get("/:contractorId", middleware.JWTMiddleware, kiosk, middleware.ContractorAccess("contractorId"), validators.ContractorID(), controllers.GetTrainingProgress)

	// Course finalize
	app.Post("/training/submit", middleware.JWTMiddleware, kiosk, validators.SubmitTraining(), controllers.SubmitTraining)
}
