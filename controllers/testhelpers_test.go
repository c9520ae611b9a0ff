package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edubright/course-builder-backend/config"
	"github.com/edubright/course-builder-backend/models"
	"github.com/edubright/course-builder-backend/routes"
	"github.com/edubright/course-builder-backend/utils"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
	))

	// AuthMiddleware reads the package-level handle.
	config.DB = db

	admin := models.User{
		ID:       uuid.New(),
		FullName: "Test Admin",
		Email:    fmt.Sprintf("admin-%s@example.com", uuid.NewString()[:8]),
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := utils.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)

	r := gin.New()
	r = routes.SetupRouter(r, db)
	return r, db, token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createCourse(t *testing.T, r *gin.Engine, token, title string) uuid.UUID {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/admin/courses", token, gin.H{"title": title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	id, err := uuid.Parse(body["course"].(map[string]any)["id"].(string))
	require.NoError(t, err)
	return id
}

func createModule(t *testing.T, r *gin.Engine, token string, courseID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/admin/modules", token, gin.H{
		"course_id": courseID.String(),
		"title":     title,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	id, err := uuid.Parse(body["module"].(map[string]any)["id"].(string))
	require.NoError(t, err)
	return id
}

func createLesson(t *testing.T, r *gin.Engine, token string, moduleID uuid.UUID, title string, lessonType models.LessonType) uuid.UUID {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/admin/lessons", token, gin.H{
		"module_id": moduleID.String(),
		"title":     title,
		"type":      string(lessonType),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	id, err := uuid.Parse(body["lesson"].(map[string]any)["id"].(string))
	require.NoError(t, err)
	return id
}

func lessonOrders(t *testing.T, db *gorm.DB, moduleID uuid.UUID) map[string]int {
	t.Helper()
	var lessons []models.Lesson
	require.NoError(t, db.Where("module_id = ?", moduleID).Find(&lessons).Error)
	out := make(map[string]int, len(lessons))
	for _, l := range lessons {
		out[l.Title] = l.SortOrder
	}
	return out
}
