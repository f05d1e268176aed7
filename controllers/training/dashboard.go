package controllers

import (
	"vms/database"
	"vms/middleware"
	"vms/models"
	trainingModels "vms/models/training"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminTrainingStats returns headline numbers for the training dashboard.
func AdminTrainingStats(c *fiber.Ctx) error {
	db := database.Database.Db
	today := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()

	var activeTrainings, totalContractors, trainedContractors, expiredContractors int64
	db.Model(&trainingModels.Training{}).Where("is_active = ? AND is_deleted = ?", true, false).Count(&activeTrainings)
	db.Model(&models.Contractor{}).Where("is_deleted = ?", false).Count(&totalContractors)
	db.Model(&models.Contractor{}).Where("status = ? AND is_deleted = ?", models.ContractorTrained, false).Count(&trainedContractors)
	db.Model(&models.Contractor{}).Where("status = ? AND is_deleted = ?", models.ContractorTrainingExpired, false).Count(&expiredContractors)

	var completionsToday, completionsThisWeek int64
	db.Model(&trainingModels.TrainingProgress{}).Where("completed_at >= ?", today).Count(&completionsToday)
	db.Model(&trainingModels.TrainingProgress{}).Where("completed_at >= ?", weekStart).Count(&completionsThisWeek)

	var submissions, completedSubmissions int64
	db.Model(&trainingModels.TrainingSubmission{}).Count(&submissions)
	db.Model(&trainingModels.TrainingSubmission{}).Where("status = ?", trainingModels.SubmissionCompleted).Count(&completedSubmissions)

	var averageScore float64
	db.Model(&trainingModels.TrainingSubmission{}).Select("COALESCE(AVG(score), 0)").Scan(&averageScore)

	completionRate := float64(0)
	if submissions > 0 {
		completionRate = float64(completedSubmissions) / float64(submissions) * 100
	}

	type ModuleStat struct {
		TrainingID  uint   `json:"training_id"`
		Title       string `json:"title"`
		Completions int64  `json:"completions"`
	}
	var perModule []ModuleStat
	db.Model(&trainingModels.TrainingProgress{}).
		Select("training_id, MAX(title) AS title, COUNT(*) AS completions").
		Group("training_id").
		Order("training_id asc").
		Scan(&perModule)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training stats fetched successfully!", fiber.Map{
		"active_trainings":        activeTrainings,
		"total_contractors":       totalContractors,
		"trained_contractors":     trainedContractors,
		"expired_contractors":     expiredContractors,
		"completions_today":       completionsToday,
		"completions_this_week":   completionsThisWeek,
		"submissions":             submissions,
		"completed_submissions":   completedSubmissions,
		"completion_rate":         completionRate,
		"average_submitted_score": averageScore,
		"modules":                 perModule,
	})
}
