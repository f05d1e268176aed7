package authRoutes

import (
	authControllers "vms/controllers/auth"
	"vms/middleware"
	authValidators "vms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authValidators.LoginHistoryList(), authControllers.LoginHistoryList)

	// Reception check-in issues the kiosk token
	app.Post("/contractor/checkin", authValidators.CheckIn(), authControllers.ContractorCheckIn)
}
