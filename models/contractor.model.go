package models

import "time"

// Contractor check-in and training states
const (
	ContractorCheckedIn       = "CHECKED_IN"
	ContractorTrained         = "TRAINED"
	ContractorTrainingExpired = "TRAINING_EXPIRED"
)

// Contractor is a visitor category that must finish site training before
// it is granted on-site access.
type Contractor struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Name                string     `json:"name" gorm:"not null"`
	Email               string     `json:"email" gorm:"index;not null"`
	Company             string     `json:"company"`
	HostName            string     `json:"host_name"`
	Status              string     `json:"status" gorm:"default:'CHECKED_IN'"`
	CheckedInAt         time.Time  `json:"checked_in_at"`
	TrainingCompletedAt *time.Time `json:"training_completed_at"`
	TrainingExpiresAt   *time.Time `json:"training_expires_at"`
	LastScore           *int       `json:"last_score"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
