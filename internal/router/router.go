package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskmind/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Task     *apiHandler.TaskHandler
	Deadline *apiHandler.DeadlineHandler
	Reminder *apiHandler.ReminderHandler
	Category *apiHandler.CategoryHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.PUT("/api/v1/auth/password", authMiddleware(handlers.Auth.ChangePassword))
	r.GET("/api/v1/account/settings", authMiddleware(handlers.Auth.Settings))
	r.PUT("/api/v1/account/settings", authMiddleware(handlers.Auth.UpdateSettings))

	// Tasks
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Delete))
	r.POST("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.Complete))

	// Deadlines
	r.GET("/api/v1/deadlines/upcoming", authMiddleware(handlers.Deadline.Upcoming))
	r.GET("/api/v1/deadlines/overdue", authMiddleware(handlers.Deadline.Overdue))
	r.GET("/api/v1/deadlines/today", authMiddleware(handlers.Deadline.DueToday))
	r.GET("/api/v1/deadlines/{id}/status", authMiddleware(handlers.Deadline.Status))
	r.POST("/api/v1/deadlines/{id}/extend", authMiddleware(handlers.Deadline.Extend))

	// Reminders
	r.GET("/api/v1/reminders", authMiddleware(handlers.Reminder.List))
	r.POST("/api/v1/reminders", authMiddleware(handlers.Reminder.Create))
	r.POST("/api/v1/reminders/before-deadline", authMiddleware(handlers.Reminder.CreateBeforeDeadline))
	r.GET("/api/v1/reminders/due", authMiddleware(handlers.Reminder.Due))
	r.POST("/api/v1/reminders/check", authMiddleware(handlers.Reminder.Check))
	r.DELETE("/api/v1/reminders/{id}", authMiddleware(handlers.Reminder.Delete))

	// Categories
	r.GET("/api/v1/categories", authMiddleware(handlers.Category.List))
	r.POST("/api/v1/categories", authMiddleware(handlers.Category.Create))
	r.PUT("/api/v1/categories/{id}", authMiddleware(handlers.Category.Rename))
	r.DELETE("/api/v1/categories/{id}", authMiddleware(handlers.Category.Delete))

	return r
}
