// Package editor implements the course content tree editor: an in-memory
// Module→Lesson tree for one course, with optimistic reordering and a
// pluggable persistence backend. It mirrors the admin console's builder
// screen, so mutation semantics follow what that screen does: structural
// drags apply locally first and persist in the background, while settings
// saves wait for the server and take its response as authoritative.
package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/edubright/course-builder-backend/models"
)

// PanelMode is the detail editor panel state. The panel shows course
// settings unless a lesson is selected.
type PanelMode string

const (
	PanelCourseSettings PanelMode = "course-settings"
	PanelLessonEditing  PanelMode = "lesson-editing"
)

// CourseSettings is a partial course update. Nil fields are left untouched.
type CourseSettings struct {
	Title            *string            `json:"title,omitempty"`
	Description      *string            `json:"description,omitempty"`
	Category         *string            `json:"category,omitempty"`
	Difficulty       *models.Difficulty `json:"difficulty,omitempty"`
	EstimatedMinutes *int               `json:"estimated_minutes,omitempty"`
	CreditHours      *float64           `json:"credit_hours,omitempty"`
	IsFree           *bool              `json:"is_free,omitempty"`
	Price            *float64           `json:"price,omitempty"`
	ThumbnailURL     *string            `json:"thumbnail_url,omitempty"`
	IsPublished      *bool              `json:"is_published,omitempty"`
}

// LessonSettings is a partial lesson update. The content type is not part of
// this struct: it is fixed at creation time.
type LessonSettings struct {
	ID            uuid.UUID `json:"id"`
	Title         *string   `json:"title,omitempty"`
	VideoAssetID  *string   `json:"video_asset_id,omitempty"`
	DurationSec   *int      `json:"duration_sec,omitempty"`
	Transcript    *string   `json:"transcript,omitempty"`
	Content       *string   `json:"content,omitempty"`
	ResourceURL   *string   `json:"resource_url,omitempty"`
	IsFreePreview *bool     `json:"is_free_preview,omitempty"`
	IsQuickWin    *bool     `json:"is_quick_win,omitempty"`
}

type ModuleOrder struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sort_order"`
}

type LessonOrder struct {
	ID        uuid.UUID `json:"id"`
	ModuleID  uuid.UUID `json:"module_id"`
	SortOrder int       `json:"sort_order"`
}

// Persister is the coordinator's persistence boundary. The HTTP client in
// this package implements it against the admin API; tests substitute fakes.
type Persister interface {
	FetchCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, fields CourseSettings) (*models.Course, error)

	CreateModule(ctx context.Context, courseID uuid.UUID, title string) (*models.Module, error)
	RenameModule(ctx context.Context, id uuid.UUID, title string) error
	DeleteModule(ctx context.Context, id uuid.UUID) error
	ReorderModules(ctx context.Context, entries []ModuleOrder) error

	CreateLesson(ctx context.Context, moduleID uuid.UUID, title string, lessonType models.LessonType) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, fields LessonSettings) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
	ReorderLessons(ctx context.Context, entries []LessonOrder) error
}

// SecondsPerMinute converts the panel's minutes field to the stored
// duration_sec value for video lessons.
const SecondsPerMinute = 60

// SetDurationMinutes records a video duration entered in minutes; the value
// is stored in seconds.
func (s *LessonSettings) SetDurationMinutes(minutes int) {
	sec := minutes * SecondsPerMinute
	s.DurationSec = &sec
}

// DurationMinutes returns a lesson's stored duration for display in the
// panel's minutes field.
func DurationMinutes(l *models.Lesson) int {
	return l.DurationSec / SecondsPerMinute
}
