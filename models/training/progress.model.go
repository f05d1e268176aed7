package training

import (
	"time"

	"gorm.io/gorm"
)

// Submission statuses
const (
	SubmissionCompleted  = "COMPLETED"
	SubmissionIncomplete = "INCOMPLETE"
)

// TrainingProgress records that a contractor passed one training module.
// There is at most one row per contractor and training.
type TrainingProgress struct {
	gorm.Model
	ContractorID string    `json:"contractor_id" gorm:"size:36;not null;uniqueIndex:idx_progress_contractor_training"`
	TrainingID   uint      `json:"training_id" gorm:"not null;uniqueIndex:idx_progress_contractor_training"`
	Title        string    `json:"title"`
	Score        *int      `json:"score"`
	CompletedAt  time.Time `json:"completed_at" gorm:"index"`
}

// TrainingSubmission is one finalize call for the whole course.
type TrainingSubmission struct {
	gorm.Model
	ContractorID     string    `json:"contractor_id" gorm:"size:36;index;not null"`
	Score            int       `json:"score"`
	Status           string    `json:"status" gorm:"default:'INCOMPLETE'"` // COMPLETED, INCOMPLETE
	CompletedModules int       `json:"completed_modules"`
	TotalModules     int       `json:"total_modules"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
