package superAdminValidator

import (
	"strings"

	"vms/middleware"
	"vms/models"
	"vms/utils"
	"vms/validators"

	"github.com/gofiber/fiber/v2"
)

// ListRequest is the pagination and filter query of admin lists.
type ListRequest struct {
	Page   int    `json:"page" query:"page" validate:"required,gte=1"`
	Limit  int    `json:"limit" query:"limit" validate:"required,gte=1,lte=100"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=CHECKED_IN TRAINED TRAINING_EXPIRED"`
}

type RegisterStaffRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,excludesall=<>{}"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF"`
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("list", reqData)
		return c.Next()
	}
}

func RegisterStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterStaffRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = utils.NormalizeEmail(reqData.Email)
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))
		if reqData.Role == "" {
			reqData.Role = models.RoleStaff
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStaff", reqData)
		return c.Next()
	}
}

// UserID validates the :id route param of a staff user.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := c.ParamsInt("id")
		if err != nil || userID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		c.Locals("userID", uint(userID))
		return c.Next()
	}
}
