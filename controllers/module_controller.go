package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edubright/course-builder-backend/models"
)

type CreateModuleInput struct {
	CourseID string `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

// POST /admin/modules
// The new module is appended at the end of the course's module list, keeping
// sort orders dense and zero-based.
func CreateModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id and title are required"})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module title is required"})
		return
	}

	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	var siblingCount int64
	db.Model(&models.Module{}).Where("course_id = ?", courseID).Count(&siblingCount)

	module := models.Module{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		SortOrder: int(siblingCount),
		Lessons:   []models.Lesson{},
	}

	if err := db.Create(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create module"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"module": module})
}

type RenameModuleInput struct {
	ID    string `json:"id" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// PATCH /admin/modules
func RenameModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RenameModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and title are required"})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module title is required"})
		return
	}

	moduleID, err := uuid.Parse(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return
	}

	var module models.Module
	if err := db.First(&module, "id = ?", moduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	module.Title = title
	if err := db.Save(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename module"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /admin/modules?id=...
// Deletes the module and all its lessons, then renumbers the surviving
// modules of the course so sort orders stay dense.
func DeleteModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	moduleID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return
	}

	var module models.Module
	if err := db.First(&module, "id = ?", moduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", moduleID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&module).Error; err != nil {
			return err
		}

		var siblings []models.Module
		if err := tx.Where("course_id = ?", module.CourseID).
			Order("sort_order ASC").
			Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].SortOrder != i {
				if err := tx.Model(&models.Module{}).
					Where("id = ?", siblings[i].ID).
					Update("sort_order", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete module"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ModuleOrderEntry struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type ReorderModulesInput struct {
	Modules []ModuleOrderEntry `json:"modules" binding:"required"`
}

// POST /admin/modules/reorder
// The payload must cover every module of the course with sort orders forming
// exactly the set {0..N-1}; anything else is rejected wholesale.
func ReorderModules(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ReorderModulesInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Modules) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modules list is required"})
		return
	}

	orders := make(map[uuid.UUID]int, len(input.Modules))
	seenOrder := make(map[int]bool, len(input.Modules))
	for _, entry := range input.Modules {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id in payload"})
			return
		}
		if _, dup := orders[id]; dup {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate module id in payload"})
			return
		}
		if entry.SortOrder < 0 || entry.SortOrder >= len(input.Modules) || seenOrder[entry.SortOrder] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sort orders must be a dense zero-based sequence"})
			return
		}
		orders[id] = entry.SortOrder
		seenOrder[entry.SortOrder] = true
	}

	firstID, _ := uuid.Parse(input.Modules[0].ID)
	var anchor models.Module
	if err := db.First(&anchor, "id = ?", firstID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	var existing []models.Module
	if err := db.Where("course_id = ?", anchor.CourseID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load modules"})
		return
	}
	if len(existing) != len(input.Modules) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must cover every module of the course"})
		return
	}
	for _, m := range existing {
		if _, ok := orders[m.ID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload must cover every module of the course"})
			return
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&models.Module{}).
				Where("id = ?", id).
				Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder modules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
