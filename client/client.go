// Package client talks to the training service over HTTP on behalf of a
// kiosk. Client implements workflow.Backend.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vms/workflow"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the training service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("training service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("training service returned %d: %s", e.StatusCode, e.Message)
}

// envelope is the {status, message, data} body every endpoint answers with.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CheckIn is the result of a reception check-in.
type CheckIn struct {
	ContractorID    string     `json:"contractorId"`
	Token           string     `json:"token"`
	Status          string     `json:"status"`
	TrainingExpires *time.Time `json:"trainingExpires"`
}

type Client struct {
	http *resty.Client
}

var _ workflow.Backend = (*Client)(nil)

// New returns a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: http}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// CheckIn registers a contractor and adopts the returned token.
func (c *Client) CheckIn(ctx context.Context, name, email, company, host string) (*CheckIn, error) {
	body := map[string]string{
		"name":    name,
		"email":   email,
		"company": company,
		"host":    host,
	}
	data, err := c.do(ctx, resty.MethodPost, "/contractor/checkin", body)
	if err != nil {
		return nil, err
	}

	var out CheckIn
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode check-in: %w", err)
	}
	c.SetToken(out.Token)
	return &out, nil
}

// LoadCatalog fetches the active training modules in catalog order. Any
// transport failure or malformed payload is reported as
// workflow.ErrCatalogUnavailable.
func (c *Client) LoadCatalog(ctx context.Context) ([]workflow.Module, error) {
	data, err := c.do(ctx, resty.MethodGet, "/trainings", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}
	if err := catalogValidator.validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}

	var payload struct {
		Trainings []workflow.Module `json:"trainings"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}
	for _, m := range payload.Trainings {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
		}
	}
	return workflow.ActiveModules(payload.Trainings), nil
}

// GetTraining fetches one active module. Failures and inactive modules are
// reported as workflow.ErrCatalogUnavailable, as in LoadCatalog.
func (c *Client) GetTraining(ctx context.Context, id uint) (workflow.Module, error) {
	data, err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/trainings/%d", id), nil)
	if err != nil {
		return workflow.Module{}, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}
	if err := trainingValidator.validate(data); err != nil {
		return workflow.Module{}, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}

	var payload struct {
		Training workflow.Module `json:"training"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return workflow.Module{}, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}
	if err := payload.Training.Validate(); err != nil {
		return workflow.Module{}, fmt.Errorf("%w: %v", workflow.ErrCatalogUnavailable, err)
	}
	if !payload.Training.IsActive {
		return workflow.Module{}, fmt.Errorf("%w: module %d is inactive", workflow.ErrCatalogUnavailable, id)
	}
	return payload.Training, nil
}

// CompleteModule reports a passed module.
func (c *Client) CompleteModule(ctx context.Context, contractorID string, completion workflow.Completion) error {
	body := map[string]any{
		"trainingId": completion.TrainingID,
		"title":      completion.Title,
	}
	if completion.Score != nil {
		body["score"] = *completion.Score
	}
	_, err := c.do(ctx, resty.MethodPost, "/training-progress/"+contractorID+"/complete", body)
	return err
}

// Progress lists the modules the service has on record for contractorID.
func (c *Client) Progress(ctx context.Context, contractorID string) ([]workflow.ProgressRecord, error) {
	data, err := c.do(ctx, resty.MethodGet, "/training-progress/"+contractorID, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Progress []struct {
			TrainingID  uint      `json:"trainingId"`
			Title       string    `json:"title"`
			Score       *int      `json:"score"`
			CompletedAt time.Time `json:"completedAt"`
		} `json:"progress"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}

	records := make([]workflow.ProgressRecord, len(payload.Progress))
	for i, p := range payload.Progress {
		records[i] = workflow.ProgressRecord{
			TrainingID:  p.TrainingID,
			Title:       p.Title,
			Score:       p.Score,
			CompletedAt: p.CompletedAt,
		}
	}
	return records, nil
}

// SubmitTraining finalizes the course with the aggregate score.
func (c *Client) SubmitTraining(ctx context.Context, contractorID string, score int) error {
	body := map[string]any{
		"contractorId": contractorID,
		"score":        score,
	}
	_, err := c.do(ctx, resty.MethodPost, "/training/submit", body)
	return err
}

// do sends one request and returns the data field of the envelope.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Status {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
	}
	return env.Data, nil
}
