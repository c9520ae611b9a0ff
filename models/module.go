package models

import (
	"time"

	"github.com/google/uuid"
)

// Module groups lessons inside a course. SortOrder is dense and zero-based
// within the owning course; every structural mutation renumbers siblings.
type Module struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    Course    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	SortOrder int       `gorm:"column:sort_order;default:0;not null" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Lessons   []Lesson  `gorm:"foreignKey:ModuleID" json:"lessons"`
}
