package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/edubright/course-builder-backend/models"
	"github.com/edubright/course-builder-backend/utils"
)

type CreateCourseInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// POST /admin/courses
func CreateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course title is required"})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course title is required"})
		return
	}

	if input.Category != "" && !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	slugValue := slug.Make(title)
	var count int64
	db.Model(&models.Course{}).Where("slug = ?", slugValue).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a course with this title already exists"})
		return
	}

	var createdBy *uuid.UUID
	if userIDStr := c.GetString("user_id"); userIDStr != "" {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			createdBy = &parsed
		}
	}

	course := models.Course{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slugValue,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  models.DifficultyBeginner,
		CreatedBy:   createdBy,
		Modules:     []models.Module{},
	}

	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"course": course})
}

// GET /courses/:id
// Returns the course with its full module/lesson tree in sort order.
func GetCourseDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var course models.Course
	if err := db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, "id = ?", courseID).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// GET /admin/courses
func GetCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Course{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	switch c.Query("published") {
	case "true":
		query = query.Where("is_published = ?", true)
	case "false":
		query = query.Where("is_published = ?", false)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count courses"})
		return
	}

	var courses []models.Course
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  courses,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Partial update: only fields present in the request body are applied, so an
// edit to one field never clobbers the others.
type UpdateCourseInput struct {
	Title            *string            `json:"title"`
	Description      *string            `json:"description"`
	Category         *string            `json:"category"`
	Difficulty       *models.Difficulty `json:"difficulty"`
	EstimatedMinutes *int               `json:"estimated_minutes"`
	CreditHours      *float64           `json:"credit_hours"`
	IsFree           *bool              `json:"is_free"`
	Price            *float64           `json:"price"`
	ThumbnailURL     *string            `json:"thumbnail_url"`
	IsPublished      *bool              `json:"is_published"`
}

// PATCH /admin/courses/:id
func UpdateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var input UpdateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "course title cannot be empty"})
			return
		}
		slugValue := slug.Make(title)
		var count int64
		db.Model(&models.Course{}).
			Where("slug = ? AND id <> ?", slugValue, courseID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a course with this title already exists"})
			return
		}
		course.Title = title
		course.Slug = slugValue
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		if *input.Category != "" && !models.IsValidCategory(*input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		course.Category = *input.Category
	}
	if input.Difficulty != nil {
		if !models.IsValidDifficulty(*input.Difficulty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown difficulty"})
			return
		}
		course.Difficulty = *input.Difficulty
	}
	if input.EstimatedMinutes != nil {
		course.EstimatedMinutes = *input.EstimatedMinutes
	}
	if input.CreditHours != nil {
		course.CreditHours = *input.CreditHours
	}
	if input.IsFree != nil {
		course.IsFree = *input.IsFree
	}
	if input.Price != nil {
		course.Price = input.Price
	}
	if input.ThumbnailURL != nil {
		course.ThumbnailURL = *input.ThumbnailURL
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	if err := db.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// PATCH /admin/courses/:id/toggle-publish
func ToggleCoursePublish(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	course.IsPublished = !course.IsPublished

	if err := db.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update publish state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// POST /admin/courses/:id/thumbnail
func UploadCourseThumbnail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}

	publicURL, err := utils.UploadThumbnailToSupabase(fileHeader, course.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload thumbnail"})
		return
	}

	course.ThumbnailURL = publicURL
	if err := db.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save thumbnail URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}
