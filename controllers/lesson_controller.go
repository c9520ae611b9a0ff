package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edubright/course-builder-backend/models"
)

type CreateLessonInput struct {
	ModuleID string            `json:"module_id" binding:"required"`
	Title    string            `json:"title" binding:"required"`
	Type     models.LessonType `json:"type" binding:"required"`
}

// POST /admin/lessons
// The content type is fixed at creation; there is no endpoint to change it.
func CreateLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module_id, title and type are required"})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson title is required"})
		return
	}

	if !models.IsValidLessonType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown lesson type"})
		return
	}

	moduleID, err := uuid.Parse(input.ModuleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module_id"})
		return
	}

	var module models.Module
	if err := db.First(&module, "id = ?", moduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	var siblingCount int64
	db.Model(&models.Lesson{}).Where("module_id = ?", moduleID).Count(&siblingCount)

	lesson := models.Lesson{
		ID:        uuid.New(),
		ModuleID:  moduleID,
		Title:     title,
		Type:      input.Type,
		SortOrder: int(siblingCount),
	}

	if err := db.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

// Partial update for the detail editor panel. Type is deliberately absent:
// the content type recorded at creation is immutable.
type UpdateLessonInput struct {
	ID            string  `json:"id" binding:"required"`
	Title         *string `json:"title"`
	VideoAssetID  *string `json:"video_asset_id"`
	DurationSec   *int    `json:"duration_sec"`
	Transcript    *string `json:"transcript"`
	Content       *string `json:"content"`
	ResourceURL   *string `json:"resource_url"`
	IsFreePreview *bool   `json:"is_free_preview"`
	IsQuickWin    *bool   `json:"is_quick_win"`
}

// PATCH /admin/lessons
func UpdateLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input UpdateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson id is required"})
		return
	}

	lessonID, err := uuid.Parse(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lesson title cannot be empty"})
			return
		}
		lesson.Title = title
	}
	if input.VideoAssetID != nil {
		lesson.VideoAssetID = *input.VideoAssetID
	}
	if input.DurationSec != nil {
		lesson.DurationSec = *input.DurationSec
	}
	if input.Transcript != nil {
		lesson.Transcript = *input.Transcript
	}
	if input.Content != nil {
		lesson.Content = *input.Content
	}
	if input.ResourceURL != nil {
		lesson.ResourceURL = *input.ResourceURL
	}
	if input.IsFreePreview != nil {
		lesson.IsFreePreview = *input.IsFreePreview
	}
	if input.IsQuickWin != nil {
		lesson.IsQuickWin = *input.IsQuickWin
	}

	if err := db.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// DELETE /admin/lessons?id=...
func DeleteLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}

		var siblings []models.Lesson
		if err := tx.Where("module_id = ?", lesson.ModuleID).
			Order("sort_order ASC").
			Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].SortOrder != i {
				if err := tx.Model(&models.Lesson{}).
					Where("id = ?", siblings[i].ID).
					Update("sort_order", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type LessonOrderEntry struct {
	ID        string `json:"id" binding:"required"`
	ModuleID  string `json:"module_id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type ReorderLessonsInput struct {
	Lessons []LessonOrderEntry `json:"lessons" binding:"required"`
}

// POST /admin/lessons/reorder
// Lessons only ever move within their own module. Each entry's module_id must
// match the lesson's stored parent, and per module the payload must cover the
// full lesson list with a dense zero-based order.
func ReorderLessons(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ReorderLessonsInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Lessons) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lessons list is required"})
		return
	}

	type parsedEntry struct {
		lessonID  uuid.UUID
		moduleID  uuid.UUID
		sortOrder int
	}

	byModule := make(map[uuid.UUID][]parsedEntry)
	seen := make(map[uuid.UUID]bool, len(input.Lessons))
	for _, entry := range input.Lessons {
		lessonID, err := uuid.Parse(entry.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id in payload"})
			return
		}
		moduleID, err := uuid.Parse(entry.ModuleID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id in payload"})
			return
		}
		if seen[lessonID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate lesson id in payload"})
			return
		}
		seen[lessonID] = true
		byModule[moduleID] = append(byModule[moduleID], parsedEntry{lessonID, moduleID, entry.SortOrder})
	}

	for moduleID, entries := range byModule {
		var stored []models.Lesson
		if err := db.Where("module_id = ?", moduleID).Find(&stored).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load lessons"})
			return
		}
		if len(stored) != len(entries) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload must cover every lesson of the module"})
			return
		}

		storedIDs := make(map[uuid.UUID]bool, len(stored))
		for _, l := range stored {
			storedIDs[l.ID] = true
		}

		seenOrder := make(map[int]bool, len(entries))
		for _, e := range entries {
			if !storedIDs[e.lessonID] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "lessons cannot move between modules"})
				return
			}
			if e.sortOrder < 0 || e.sortOrder >= len(entries) || seenOrder[e.sortOrder] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "sort orders must be a dense zero-based sequence"})
				return
			}
			seenOrder[e.sortOrder] = true
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, entries := range byModule {
			for _, e := range entries {
				if err := tx.Model(&models.Lesson{}).
					Where("id = ?", e.lessonID).
					Update("sort_order", e.sortOrder).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
