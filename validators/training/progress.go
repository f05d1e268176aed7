package trainingValidator

import (
	"strings"

	"vms/middleware"
	"vms/validators"

	"github.com/gofiber/fiber/v2"
)

// CompleteRequest is the body of a module completion report.
type CompleteRequest struct {
	TrainingID uint   `json:"trainingId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"max=150"`
	Score      *int   `json:"score" validate:"omitempty,gte=0,lte=100"`
}

// SubmitRequest is the body of the course finalize call.
type SubmitRequest struct {
	ContractorID string `json:"contractorId" validate:"required,uuid"`
	Score        *int   `json:"score" validate:"required,gte=0,lte=100"`
}

// ContractorID validates the :contractorId route param.
func ContractorID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contractorID := strings.TrimSpace(c.Params("contractorId"))
		if !validators.Var(contractorID, "required,uuid") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Contractor ID!", nil)
		}
		c.Locals("contractorID", contractorID)
		return c.Next()
	}
}

func CompleteTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contractorID := strings.TrimSpace(c.Params("contractorId"))
		if !validators.Var(contractorID, "required,uuid") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Contractor ID!", nil)
		}

		reqData := new(CompleteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contractorID", contractorID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}

func SubmitTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.ContractorID = strings.TrimSpace(reqData.ContractorID)
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
