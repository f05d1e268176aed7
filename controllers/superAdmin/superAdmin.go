package superAdminController

import (
	"log"

	"vms/database"
	"vms/middleware"
	"vms/models"
	"vms/utils"
	superAdminValidator "vms/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserList pages through staff and admin accounts.
func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("list").(*superAdminValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var users []models.User
	var total int64

	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("id asc").
		Offset(offset).
		Limit(reqData.Limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	// Count total records
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// ContractorList pages through contractors, optionally by training status.
func ContractorList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("list").(*superAdminValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	scope := database.Database.Db.Model(&models.Contractor{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		scope = scope.Where("status = ?", reqData.Status)
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contractor list!", nil)
	}

	var contractors []models.Contractor
	if err := scope.Session(&gorm.Session{}).
		Order("checked_in_at desc").
		Offset(offset).
		Limit(reqData.Limit).
		Find(&contractors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contractor list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contractor List.", fiber.Map{
		"contractors": contractors,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// RegisterStaff creates a reception or admin account.
func RegisterStaff(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStaff").(*superAdminValidator.RegisterStaffRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: hashedPassword,
		Role:     reqData.Role,
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving staff user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// SetUserBlocked returns a handler that blocks or unblocks a staff account.
// Unblocking also clears the failed login counter.
func SetUserBlocked(blocked bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		updates := map[string]interface{}{"is_blocked": blocked}
		if !blocked {
			updates["failed_login_attempts"] = 0
		}
		result := database.Database.Db.Model(&models.User{}).
			Where("id = ? AND is_deleted = ?", userID, false).
			Updates(updates)
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}

		message := "User unblocked successfully."
		if blocked {
			message = "User blocked successfully."
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
			"id":         userID,
			"is_blocked": blocked,
		})
	}
}
