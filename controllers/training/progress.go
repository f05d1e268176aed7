package controllers

import (
	"errors"
	"time"

	"vms/config"
	"vms/database"
	"vms/middleware"
	"vms/models"
	trainingModels "vms/models/training"
	trainingValidator "vms/validators/training"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRecord is the completed-module view returned to kiosks.
type ProgressRecord struct {
	TrainingID  uint      `json:"trainingId"`
	Title       string    `json:"title"`
	Score       *int      `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

func findContractor(contractorID string) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contractorID, false).First(&contractor).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}

// CompleteTraining records that a contractor passed one training module.
// Repeated calls for the same module leave the first record untouched.
func CompleteTraining(c *fiber.Ctx) error {
	contractorID := c.Locals("contractorID").(string)
	reqData, ok := c.Locals("validatedCompletion").(*trainingValidator.CompleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := findContractor(contractorID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contractor not found!", nil)
	}

	var training trainingModels.Training
	if err := database.Database.Db.
		Where("id = ? AND is_active = ? AND is_deleted = ?", reqData.TrainingID, true, false).
		First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	title := reqData.Title
	if title == "" {
		title = training.Title
	}

	progress := trainingModels.TrainingProgress{
		ContractorID: contractorID,
		TrainingID:   training.ID,
		Title:        title,
		Score:        reqData.Score,
		CompletedAt:  time.Now(),
	}

	// The unique index makes concurrent duplicates collapse into one row.
	result := database.Database.Db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&progress)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record training completion!", nil)
	}

	alreadyCompleted := result.RowsAffected == 0
	if alreadyCompleted {
		if err := database.Database.Db.
			Where("contractor_id = ? AND training_id = ?", contractorID, training.ID).
			First(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record training completion!", nil)
		}
	}

	message := "Training marked as completed!"
	if alreadyCompleted {
		message = "Training already completed!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"progress":          toRecord(progress),
		"already_completed": alreadyCompleted,
	})
}

// GetTrainingProgress lists the modules a contractor has completed.
func GetTrainingProgress(c *fiber.Ctx) error {
	contractorID := c.Locals("contractorID").(string)

	contractor, err := findContractor(contractorID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contractor not found!", nil)
	}

	var progress []trainingModels.TrainingProgress
	if err := database.Database.Db.
		Where("contractor_id = ?", contractorID).
		Order("completed_at asc").
		Find(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch training progress!", nil)
	}

	records := make([]ProgressRecord, len(progress))
	for i, p := range progress {
		records[i] = toRecord(p)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training progress fetched successfully!", fiber.Map{
		"contractor": contractor,
		"progress":   records,
	})
}

// SubmitTraining finalizes the course for a contractor. The contractor is
// marked trained only when every active training has a completion record.
func SubmitTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmission").(*trainingValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	if !middleware.CanActFor(c, reqData.ContractorID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only submit your own training!", nil)
	}

	contractor, err := findContractor(reqData.ContractorID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contractor not found!", nil)
	}

	var submission trainingModels.TrainingSubmission
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var total, completed int64
		if err := tx.Model(&trainingModels.Training{}).
			Where("is_active = ? AND is_deleted = ?", true, false).
			Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&trainingModels.TrainingProgress{}).
			Joins("JOIN trainings ON trainings.id = training_progresses.training_id").
			Where("training_progresses.contractor_id = ? AND trainings.is_active = ? AND trainings.is_deleted = ?", contractor.ID, true, false).
			Count(&completed).Error; err != nil {
			return err
		}

		now := time.Now()
		submission = trainingModels.TrainingSubmission{
			ContractorID:     contractor.ID,
			Score:            *reqData.Score,
			Status:           trainingModels.SubmissionIncomplete,
			CompletedModules: int(completed),
			TotalModules:     int(total),
			SubmittedAt:      now,
		}
		if completed >= total {
			submission.Status = trainingModels.SubmissionCompleted
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"last_score": *reqData.Score}
		if submission.Status == trainingModels.SubmissionCompleted {
			expiresAt := now.AddDate(0, 0, config.AppConfig.TrainingValidityDays)
			updates["status"] = models.ContractorTrained
			updates["training_completed_at"] = now
			updates["training_expires_at"] = expiresAt
		}
		return tx.Model(contractor).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Contractor not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit training!", nil)
	}

	message := "Training submitted successfully!"
	if submission.Status != trainingModels.SubmissionCompleted {
		message = "Training submitted, but some modules are not completed yet!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"submission": submission,
		"completed":  submission.Status == trainingModels.SubmissionCompleted,
	})
}

func toRecord(p trainingModels.TrainingProgress) ProgressRecord {
	return ProgressRecord{
		TrainingID:  p.TrainingID,
		Title:       p.Title,
		Score:       p.Score,
		CompletedAt: p.CompletedAt,
	}
}
