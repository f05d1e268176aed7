package superAdminRoutes

import (
	superAdminController "vms/controllers/superAdmin"
	"vms/middleware"
	"vms/models"
	superAdminValidator "vms/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	adminGroup.Get("/user/list", middleware.JWTMiddleware, adminOnly, superAdminValidator.List(), superAdminController.UserList)
	adminGroup.Post("/register-staff", middleware.JWTMiddleware, adminOnly, superAdminValidator.RegisterStaff(), superAdminController.RegisterStaff)
	adminGroup.Post("/user/:id/block", middleware.JWTMiddleware, adminOnly, superAdminValidator.UserID(), superAdminController.SetUserBlocked(true))
	adminGroup.Post("/user/:id/unblock", middleware.JWTMiddleware, adminOnly, superAdminValidator.UserID(), superAdminController.SetUserBlocked(false))
	adminGroup.Get("/contractor/list", middleware.JWTMiddleware, staff, superAdminValidator.List(), superAdminController.ContractorList)
}
