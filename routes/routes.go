package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edubright/course-builder-backend/controllers"
	"github.com/edubright/course-builder-backend/middleware"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	// Course tree is readable without the admin gate so the learner Hub can
	// render the catalog view.
	public := api.Group("/")
	{
		public.Use(middleware.DBMiddleware(db))
		public.GET("/courses/:id", controllers.GetCourseDetail)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin", "creator"))

		// Course management
		admin.POST("/courses", controllers.CreateCourse)
		admin.GET("/courses", controllers.GetCourses)
		admin.PATCH("/courses/:id", controllers.UpdateCourse)
		admin.PATCH("/courses/:id/toggle-publish", controllers.ToggleCoursePublish)
		admin.POST("/courses/:id/thumbnail", controllers.UploadCourseThumbnail)

		// Module management
		admin.POST("/modules", controllers.CreateModule)
		admin.PATCH("/modules", controllers.RenameModule)
		admin.DELETE("/modules", controllers.DeleteModule)
		admin.POST("/modules/reorder", controllers.ReorderModules)

		// Lesson management
		admin.POST("/lessons", controllers.CreateLesson)
		admin.PATCH("/lessons", controllers.UpdateLesson)
		admin.DELETE("/lessons", controllers.DeleteLesson)
		admin.POST("/lessons/reorder", controllers.ReorderLessons)
	}

	return r
}
