package controllers

import (
	"errors"

	"vms/database"
	"vms/middleware"
	trainingModels "vms/models/training"
	trainingValidator "vms/validators/training"
	"vms/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListTrainings returns the active training catalog in order.
func ListTrainings(c *fiber.Ctx) error {
	var trainings []trainingModels.Training
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("order_index asc, id asc").
		Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", nil)
	}

	modules := make([]workflow.Module, len(trainings))
	for i, t := range trainings {
		modules[i] = t.Module()
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": modules,
	})
}

// GetTraining returns one active training.
func GetTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)

	var training trainingModels.Training
	if err := database.Database.Db.
		Where("id = ? AND is_active = ? AND is_deleted = ?", trainingID, true, false).
		First(&training).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training fetched successfully!", fiber.Map{
		"training": training.Module(),
	})
}

// AdminListTrainings lists every training, inactive ones included.
func AdminListTrainings(c *fiber.Ctx) error {
	var trainings []trainingModels.Training
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("order_index asc, id asc").
		Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": trainings,
		"total":     len(trainings),
	})
}

// AdminCreateTraining adds a training module to the catalog.
func AdminCreateTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTraining").(*trainingValidator.TrainingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	training := trainingModels.Training{}
	applyModule(&training, reqData.Module())
	training.OrderIndex = reqData.OrderIndex

	// Append to the end of the catalog when no order is given
	if training.OrderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&trainingModels.Training{}).
			Where("is_deleted = ?", false).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxOrder)
		training.OrderIndex = maxOrder + 1
	}

	if err := database.Database.Db.Create(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training created successfully!", training)
}

// AdminUpdateTraining replaces the content of a training module.
func AdminUpdateTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)
	reqData, ok := c.Locals("validatedTraining").(*trainingValidator.TrainingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var training trainingModels.Training
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	applyModule(&training, reqData.Module())
	if reqData.OrderIndex > 0 {
		training.OrderIndex = reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training updated successfully!", training)
}

// AdminDeleteTraining soft deletes a training module.
func AdminDeleteTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)

	result := database.Database.Db.Model(&trainingModels.Training{}).
		Where("id = ? AND is_deleted = ?", trainingID, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete training!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training deleted successfully!", nil)
}

// AdminSetTrainingActive returns a handler that activates or deactivates a
// training. Inactive trainings disappear from the kiosk catalog.
func AdminSetTrainingActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID := c.Locals("trainingID").(uint)

		result := database.Database.Db.Model(&trainingModels.Training{}).
			Where("id = ? AND is_deleted = ?", trainingID, false).
			Update("is_active", active)
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update training!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
		}

		message := "Training deactivated successfully!"
		if active {
			message = "Training activated successfully!"
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
			"id":        trainingID,
			"is_active": active,
		})
	}
}

func applyModule(t *trainingModels.Training, m workflow.Module) {
	t.Title = m.Title
	t.Description = m.Description
	t.Videos = datatypes.NewJSONSlice(m.Videos)
	t.Books = datatypes.NewJSONSlice(m.Books)
	t.Questions = datatypes.NewJSONSlice(m.Questions)
	t.RequiredScorePercent = m.RequiredScorePercent
	t.IsActive = m.IsActive
}
