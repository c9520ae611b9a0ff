package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonType string

const (
	LessonTypeVideo    LessonType = "video"
	LessonTypeText     LessonType = "text"
	LessonTypeQuiz     LessonType = "quiz"
	LessonTypeResource LessonType = "resource"
)

// IsValidLessonType reports whether t belongs to the closed type set.
// The type is chosen at creation and never changes afterwards.
func IsValidLessonType(t LessonType) bool {
	switch t {
	case LessonTypeVideo, LessonTypeText, LessonTypeQuiz, LessonTypeResource:
		return true
	}
	return false
}

type Lesson struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID uuid.UUID  `gorm:"type:uuid;not null;index" json:"module_id"`
	Module   Module     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Type     LessonType `gorm:"type:VARCHAR(20);not null" json:"type"`

	// Type-specific payload. Only the fields matching Type are meaningful:
	// video: VideoAssetID, DurationSec, Transcript
	// text: Content
	// quiz: Content (free-form placeholder, no structured quiz model)
	// resource: ResourceURL
	VideoAssetID string `gorm:"size:255" json:"video_asset_id"`
	DurationSec  int    `gorm:"default:0" json:"duration_sec"`
	Transcript   string `gorm:"type:text" json:"transcript"`
	Content      string `gorm:"type:text" json:"content"`
	ResourceURL  string `gorm:"type:text" json:"resource_url"`

	IsFreePreview bool `gorm:"default:false;not null" json:"is_free_preview"`
	IsQuickWin    bool `gorm:"default:false;not null" json:"is_quick_win"`

	SortOrder int       `gorm:"column:sort_order;default:0;not null" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
