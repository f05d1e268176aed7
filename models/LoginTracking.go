package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking is one staff login or contractor check-in. Subject is the
// token subject issued for it.
type LoginTracking struct {
	gorm.Model
	Subject   string    `json:"subject" gorm:"size:64;index;not null"`
	Role      string    `json:"role"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
