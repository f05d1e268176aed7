package utils

import (
	"log"
	"time"

	"vms/config"
	"vms/database"
	"vms/models"
	trainingModels "vms/models/training"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeTrainingScheduler starts the job that expires old training
// completions. The returned cron must be stopped on shutdown.
func InitializeTrainingScheduler() (*cron.Cron, error) {
	log.Println("[TRAINING-SCHEDULER] Initializing training scheduler...")

	c := cron.New()
	schedule := config.AppConfig.TrainingExpirySchedule
	if _, err := c.AddFunc(schedule, func() {
		log.Println("[TRAINING-SCHEDULER] Running training expiry check...")
		if _, err := ExpireTrainingCompletions(database.Database.Db, time.Now()); err != nil {
			log.Printf("[TRAINING-SCHEDULER] Error expiring trainings: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[TRAINING-SCHEDULER] Training scheduler started - schedule %q", schedule)
	return c, nil
}

// ExpireTrainingCompletions moves trained contractors whose training expired
// before at to TRAINING_EXPIRED and removes their module completions so the
// next visit starts the course from the first module.
func ExpireTrainingCompletions(db *gorm.DB, at time.Time) (int, error) {
	var expired []models.Contractor
	if err := db.
		Where("status = ? AND training_expires_at IS NOT NULL AND training_expires_at < ? AND is_deleted = ?", models.ContractorTrained, at, false).
		Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, len(expired))
	for i, c := range expired {
		ids[i] = c.ID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Contractor{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": models.ContractorTrainingExpired}).Error; err != nil {
			return err
		}
		return tx.Unscoped().
			Where("contractor_id IN ?", ids).
			Delete(&trainingModels.TrainingProgress{}).Error
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[TRAINING-SCHEDULER] Expired training for %d contractors", len(ids))
	return len(ids), nil
}
