package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubright/course-builder-backend/models"
)

func TestCreateModuleAppendsDensely(t *testing.T) {
	r, db, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Module Ordering")
	createModule(t, r, token, courseID, "First")
	createModule(t, r, token, courseID, "Second")
	createModule(t, r, token, courseID, "Third")

	var modules []models.Module
	require.NoError(t, db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&modules).Error)
	require.Len(t, modules, 3)
	for i, m := range modules {
		assert.Equal(t, i, m.SortOrder)
	}
	assert.Equal(t, "First", modules[0].Title)
	assert.Equal(t, "Third", modules[2].Title)
}

func TestCreateModuleValidation(t *testing.T) {
	r, _, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Validation")

	w := doRequest(t, r, http.MethodPost, "/api/admin/modules", token, gin.H{
		"course_id": courseID.String(),
		"title":     "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/admin/modules", token, gin.H{
		"course_id": uuid.NewString(),
		"title":     "Orphan",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenameModule(t *testing.T) {
	r, db, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Rename")
	moduleID := createModule(t, r, token, courseID, "Old Name")

	w := doRequest(t, r, http.MethodPatch, "/api/admin/modules", token, gin.H{
		"id":    moduleID.String(),
		"title": "New Name",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var module models.Module
	require.NoError(t, db.First(&module, "id = ?", moduleID).Error)
	assert.Equal(t, "New Name", module.Title)
}

func TestDeleteModuleCascadesAndRenumbers(t *testing.T) {
	r, db, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Cascade")
	m1 := createModule(t, r, token, courseID, "M1")
	m2 := createModule(t, r, token, courseID, "M2")
	m3 := createModule(t, r, token, courseID, "M3")
	createLesson(t, r, token, m1, "A", models.LessonTypeText)
	createLesson(t, r, token, m1, "B", models.LessonTypeText)

	w := doRequest(t, r, http.MethodDelete, "/api/admin/modules?id="+m1.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var lessonCount int64
	db.Model(&models.Lesson{}).Where("module_id = ?", m1).Count(&lessonCount)
	assert.EqualValues(t, 0, lessonCount)

	var modules []models.Module
	require.NoError(t, db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, m2, modules[0].ID)
	assert.Equal(t, 0, modules[0].SortOrder)
	assert.Equal(t, m3, modules[1].ID)
	assert.Equal(t, 1, modules[1].SortOrder)
}

func TestReorderModules(t *testing.T) {
	r, db, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Reorder")
	m1 := createModule(t, r, token, courseID, "M1")
	m2 := createModule(t, r, token, courseID, "M2")
	m3 := createModule(t, r, token, courseID, "M3")

	w := doRequest(t, r, http.MethodPost, "/api/admin/modules/reorder", token, gin.H{
		"modules": []gin.H{
			{"id": m3.String(), "sort_order": 0},
			{"id": m1.String(), "sort_order": 1},
			{"id": m2.String(), "sort_order": 2},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var modules []models.Module
	require.NoError(t, db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&modules).Error)
	require.Len(t, modules, 3)
	assert.Equal(t, []uuid.UUID{m3, m1, m2}, []uuid.UUID{modules[0].ID, modules[1].ID, modules[2].ID})
	for i, m := range modules {
		assert.Equal(t, i, m.SortOrder)
	}
}

func TestReorderModulesRejectsNonDenseOrIncompletePayloads(t *testing.T) {
	r, _, token := setupTestRouter(t)

	courseID := createCourse(t, r, token, "Reorder Guards")
	m1 := createModule(t, r, token, courseID, "M1")
	m2 := createModule(t, r, token, courseID, "M2")

	// Gap in the sequence.
	w := doRequest(t, r, http.MethodPost, "/api/admin/modules/reorder", token, gin.H{
		"modules": []gin.H{
			{"id": m1.String(), "sort_order": 0},
			{"id": m2.String(), "sort_order": 2},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate position.
	w = doRequest(t, r, http.MethodPost, "/api/admin/modules/reorder", token, gin.H{
		"modules": []gin.H{
			{"id": m1.String(), "sort_order": 0},
			{"id": m2.String(), "sort_order": 0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing a sibling.
	w = doRequest(t, r, http.MethodPost, "/api/admin/modules/reorder", token, gin.H{
		"modules": []gin.H{
			{"id": m1.String(), "sort_order": 0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
