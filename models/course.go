package models

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Fixed category list shown in the course settings panel.
var CourseCategories = []string{
	"instructional-strategies",
	"classroom-management",
	"assessment",
	"technology-integration",
	"leadership",
	"sel",
}

func IsValidCategory(category string) bool {
	for _, c := range CourseCategories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Slug             string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Description      string     `gorm:"type:text" json:"description"`
	Category         string     `gorm:"size:100" json:"category"`
	Difficulty       Difficulty `gorm:"type:VARCHAR(20);default:'beginner'" json:"difficulty"`
	EstimatedMinutes int        `gorm:"default:0" json:"estimated_minutes"`
	CreditHours      float64    `gorm:"default:0" json:"credit_hours"`
	IsPublished      bool       `gorm:"default:false;not null" json:"is_published"`
	IsFree           bool       `gorm:"default:false;not null" json:"is_free"`
	Price            *float64   `json:"price"`
	ThumbnailURL     string     `gorm:"type:text" json:"thumbnail_url"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Modules          []Module   `gorm:"foreignKey:CourseID" json:"modules"`
}
