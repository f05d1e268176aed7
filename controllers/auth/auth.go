package controllers

import (
	"errors"
	"log"
	"time"

	"vms/database"
	"vms/middleware"
	"vms/models"
	"vms/utils"
	authValidator "vms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxFailedLogins = 5

// Login authenticates a staff user and returns a token.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if user.IsBlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is blocked. Contact an administrator!", nil)
	}

	if !utils.CheckPassword(user.Password, reqData.Password) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
		}
		database.Database.Db.Model(&user).Updates(map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"is_blocked":            user.IsBlocked,
		})
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	subject := utils.UserSubject(user.ID)
	token, err := middleware.GenerateJWT(subject, user.Name, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}
	trackLogin(c, subject, user.Role)

	loginAt := time.Now()
	database.Database.Db.Model(&user).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"last_login":            loginAt,
	})
	user.LastLogin = &loginAt

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ContractorCheckIn registers a contractor at reception and issues the token
// the training kiosk uses. A returning contractor keeps the same id.
func ContractorCheckIn(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCheckIn").(*authValidator.CheckInRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	var contractor models.Contractor
	err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&contractor).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		contractor = models.Contractor{
			ID:          utils.NewContractorID(),
			Name:        reqData.Name,
			Email:       reqData.Email,
			Company:     reqData.Company,
			HostName:    reqData.HostName,
			Status:      models.ContractorCheckedIn,
			CheckedInAt: now,
		}
		if err := database.Database.Db.Create(&contractor).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check in contractor!", nil)
		}
	case err != nil:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check in contractor!", nil)
	default:
		contractor.Name = reqData.Name
		contractor.Company = reqData.Company
		contractor.HostName = reqData.HostName
		contractor.CheckedInAt = now
		if err := database.Database.Db.Save(&contractor).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check in contractor!", nil)
		}
	}

	token, err := middleware.GenerateJWT(contractor.ID, contractor.Name, models.RoleContractor)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}
	trackLogin(c, contractor.ID, models.RoleContractor)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checked in successfully!", fiber.Map{
		"contractorId":    contractor.ID,
		"token":           token,
		"status":          contractor.Status,
		"trainingExpires": contractor.TrainingExpiresAt,
	})
}

// LoginHistoryList pages through the caller's own logins or check-ins.
func LoginHistoryList(c *fiber.Ctx) error {
	subject, _ := c.Locals("subject").(string)
	reqData, ok := c.Locals("validatedLoginHistory").(*authValidator.HistoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var history []models.LoginTracking
	var total int64
	if err := database.Database.Db.Where("subject = ? AND is_deleted = ?", subject, false).
		Order("timestamp desc").
		Offset(offset).
		Limit(reqData.Limit).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	// Count total records
	database.Database.Db.Model(&models.LoginTracking{}).Where("subject = ? AND is_deleted = ?", subject, false).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login History List.", fiber.Map{
		"loginTracking": history,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

func trackLogin(c *fiber.Ctx, subject, role string) {
	entry := models.LoginTracking{
		Subject:   subject,
		Role:      role,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	log.Printf("%s %s signed in from IP: %s", role, subject, entry.IPAddress)
	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}
}
