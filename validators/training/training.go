package trainingValidator

import (
	"strconv"
	"strings"

	"vms/middleware"
	"vms/validators"
	"vms/workflow"

	"github.com/gofiber/fiber/v2"
)

type MediaRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	URL  string `json:"url" validate:"required,url"`
}

type QuestionRequest struct {
	Question           string   `json:"question" validate:"required,max=500"`
	Options            []string `json:"options" validate:"min=2,max=10,dive,required,max=200"`
	CorrectOptionIndex *int     `json:"correctOptionIndex" validate:"required,gte=0"`
}

// TrainingRequest is the admin create/update body for a training module.
type TrainingRequest struct {
	Title                string            `json:"title" validate:"required,min=3,max=150,excludesall=<>{}"`
	Description          string            `json:"description" validate:"max=2000"`
	Videos               []MediaRequest    `json:"videos" validate:"max=20,dive"`
	Books                []MediaRequest    `json:"books" validate:"max=20,dive"`
	Questions            []QuestionRequest `json:"questions" validate:"max=100,dive"`
	RequiredScorePercent *int              `json:"requiredScorePercent" validate:"required,gte=0,lte=100"`
	IsActive             *bool             `json:"isActive"`
	OrderIndex           int               `json:"orderIndex" validate:"gte=0"`
}

// Module converts a validated request into the catalog model.
func (r *TrainingRequest) Module() workflow.Module {
	m := workflow.Module{
		Title:                strings.TrimSpace(r.Title),
		Description:          strings.TrimSpace(r.Description),
		Videos:               make([]workflow.Media, len(r.Videos)),
		Books:                make([]workflow.Media, len(r.Books)),
		Questions:            make([]workflow.Question, len(r.Questions)),
		RequiredScorePercent: *r.RequiredScorePercent,
		IsActive:             r.IsActive == nil || *r.IsActive,
	}
	for i, v := range r.Videos {
		m.Videos[i] = workflow.Media{Name: strings.TrimSpace(v.Name), URL: v.URL}
	}
	for i, b := range r.Books {
		m.Books[i] = workflow.Media{Name: strings.TrimSpace(b.Name), URL: b.URL}
	}
	for i, q := range r.Questions {
		m.Questions[i] = workflow.Question{
			Question:           strings.TrimSpace(q.Question),
			Options:            q.Options,
			CorrectOptionIndex: *q.CorrectOptionIndex,
		}
	}
	return m
}

func validateTraining(reqData *TrainingRequest) map[string]string {
	errors := validators.Struct(reqData)
	if len(errors) == 0 {
		if err := reqData.Module().Validate(); err != nil {
			errors["training"] = err.Error()
		}
	}
	return errors
}

func CreateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TrainingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validateTraining(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTraining", reqData)
		return c.Next()
	}
}

func UpdateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Training ID!", nil)
		}

		reqData := new(TrainingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validateTraining(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTraining", reqData)
		c.Locals("trainingID", trainingID)
		return c.Next()
	}
}

// TrainingID validates the :id route param.
func TrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trainingID, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Training ID!", nil)
		}
		c.Locals("trainingID", trainingID)
		return c.Next()
	}
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
