package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskflow/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Upload  *apiHandler.UploadHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/bulk/status", authMiddleware(handlers.Task.BulkUpdateStatus))
	r.POST("/api/v1/tasks/bulk/delete", authMiddleware(handlers.Task.BulkDelete))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.DELETE("/api/v1/tasks/{id}/attachments/{index}", authMiddleware(handlers.Task.RemoveAttachment))

	r.POST("/api/v1/uploads", authMiddleware(handlers.Upload.Upload))

	return r
}
