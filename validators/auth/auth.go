package authValidator

import (
	"strings"

	"vms/middleware"
	"vms/utils"
	"vms/validators"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type CheckInRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,excludesall=<>{}"`
	Email    string `json:"email" validate:"required,email"`
	Company  string `json:"company" validate:"max=150,excludesall=<>{}"`
	HostName string `json:"host" validate:"max=100,excludesall=<>{}"`
}

// HistoryRequest is the pagination query of the login history list.
type HistoryRequest struct {
	Page  int `json:"page" query:"page" validate:"required,gte=1"`
	Limit int `json:"limit" query:"limit" validate:"required,gte=1,lte=100"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = utils.NormalizeEmail(reqData.Email)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func CheckIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckInRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = utils.NormalizeEmail(reqData.Email)
		reqData.Company = strings.TrimSpace(reqData.Company)
		reqData.HostName = strings.TrimSpace(reqData.HostName)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckIn", reqData)
		return c.Next()
	}
}

func LoginHistoryList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HistoryRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLoginHistory", reqData)
		return c.Next()
	}
}
