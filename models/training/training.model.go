package training

import (
	"time"

	"vms/workflow"

	"gorm.io/datatypes"
)

// Training is a stored training module. Videos, books and questions live in
// JSON columns; OrderIndex gives the order contractors take them in.
type Training struct {
	ID                   uint                                   `json:"id" gorm:"primaryKey"`
	CreatedAt            time.Time                              `json:"created_at"`
	UpdatedAt            time.Time                              `json:"updated_at"`
	Title                string                                 `json:"title" gorm:"not null"`
	Description          string                                 `json:"description" gorm:"type:text"`
	Videos               datatypes.JSONSlice[workflow.Media]    `json:"videos"`
	Books                datatypes.JSONSlice[workflow.Media]    `json:"books"`
	Questions            datatypes.JSONSlice[workflow.Question] `json:"questions"`
	RequiredScorePercent int                                    `json:"required_score_percent"`
	IsActive             bool                                   `json:"is_active" gorm:"default:false"`
	OrderIndex           int                                    `json:"order_index" gorm:"default:0"`
	IsDeleted            bool                                   `json:"-" gorm:"default:false"`
}

// Module converts the stored row into the catalog shape served to kiosks.
func (t Training) Module() workflow.Module {
	return workflow.Module{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		Videos:               append([]workflow.Media{}, t.Videos...),
		Books:                append([]workflow.Media{}, t.Books...),
		Questions:            append([]workflow.Question{}, t.Questions...),
		RequiredScorePercent: t.RequiredScorePercent,
		IsActive:             t.IsActive,
	}
}
