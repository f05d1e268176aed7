package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles. Contractors are not users; they authenticate with a
// check-in token carrying RoleContractor.
const (
	RoleAdmin      = "ADMIN"
	RoleStaff      = "STAFF"
	RoleContractor = "CONTRACTOR"
)

type User struct {
	gorm.Model
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Role                string     `json:"role" gorm:"default:'STAFF'"` // STAFF, ADMIN
	Password            string     `json:"-" gorm:"not null"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsBlocked           bool       `json:"is_blocked" gorm:"default:false"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
