package middleware

import (
	"vms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole only lets tokens carrying one of roles through.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// ContractorAccess lets admins through and contractors only when the
// contractor id in the route is their own.
func ContractorAccess(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CanActFor(c, c.Params(param)) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You can only access your own training records!", nil)
		}
		return c.Next()
	}
}

// CanActFor reports whether the authenticated caller may read or write the
// training records of contractorID.
func CanActFor(c *fiber.Ctx, contractorID string) bool {
	role, _ := c.Locals("role").(string)
	subject, _ := c.Locals("subject").(string)
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleContractor:
		return contractorID != "" && subject == contractorID
	default:
		return false
	}
}
