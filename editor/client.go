package editor

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/edubright/course-builder-backend/models"
)

// Client talks to the course builder API and implements Persister. No
// retries and no request queue: every call is a single round trip, exactly
// as the builder screen issues them.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(token),
	}
}

type courseEnvelope struct {
	Course *models.Course `json:"course"`
}

type moduleEnvelope struct {
	Module *models.Module `json:"module"`
}

type lessonEnvelope struct {
	Lesson *models.Lesson `json:"lesson"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func apiError(resp *resty.Response) error {
	if env, ok := resp.Error().(*errorEnvelope); ok && env != nil && env.Error != "" {
		return fmt.Errorf("api: %s (%s)", env.Error, resp.Status())
	}
	return fmt.Errorf("api: unexpected status %s", resp.Status())
}

func (c *Client) FetchCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var out courseEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Get("/api/courses/" + id.String())
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Course == nil {
		return nil, fmt.Errorf("api: response missing course (%s)", resp.Status())
	}
	return out.Course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id uuid.UUID, fields CourseSettings) (*models.Course, error) {
	var out courseEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(fields).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Patch("/api/admin/courses/" + id.String())
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Course == nil {
		return nil, fmt.Errorf("api: response missing course (%s)", resp.Status())
	}
	return out.Course, nil
}

func (c *Client) CreateModule(ctx context.Context, courseID uuid.UUID, title string) (*models.Module, error) {
	var out moduleEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"course_id": courseID.String(), "title": title}).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Post("/api/admin/modules")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Module == nil {
		return nil, fmt.Errorf("api: response missing module (%s)", resp.Status())
	}
	return out.Module, nil
}

func (c *Client) RenameModule(ctx context.Context, id uuid.UUID, title string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"id": id.String(), "title": title}).
		SetError(&errorEnvelope{}).
		Patch("/api/admin/modules")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) DeleteModule(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", id.String()).
		SetError(&errorEnvelope{}).
		Delete("/api/admin/modules")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) ReorderModules(ctx context.Context, entries []ModuleOrder) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"modules": entries}).
		SetError(&errorEnvelope{}).
		Post("/api/admin/modules/reorder")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) CreateLesson(ctx context.Context, moduleID uuid.UUID, title string, lessonType models.LessonType) (*models.Lesson, error) {
	var out lessonEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"module_id": moduleID.String(),
			"title":     title,
			"type":      string(lessonType),
		}).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Post("/api/admin/lessons")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Lesson == nil {
		return nil, fmt.Errorf("api: response missing lesson (%s)", resp.Status())
	}
	return out.Lesson, nil
}

func (c *Client) UpdateLesson(ctx context.Context, fields LessonSettings) (*models.Lesson, error) {
	var out lessonEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(fields).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Patch("/api/admin/lessons")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if out.Lesson == nil {
		return nil, fmt.Errorf("api: response missing lesson (%s)", resp.Status())
	}
	return out.Lesson, nil
}

func (c *Client) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", id.String()).
		SetError(&errorEnvelope{}).
		Delete("/api/admin/lessons")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) ReorderLessons(ctx context.Context, entries []LessonOrder) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"lessons": entries}).
		SetError(&errorEnvelope{}).
		Post("/api/admin/lessons/reorder")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

var _ Persister = (*Client)(nil)
