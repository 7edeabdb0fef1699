package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

// Services are the dependencies of the API routes
type Services struct {
	Tasks    *services.TaskService
	Projects *services.ProjectService
	Users    *services.UserService
	Notifier services.Notifier
}

// RegisterRoutes mounts every API route on api. The caller installs the
// session middleware.
func RegisterRoutes(api *gin.RouterGroup, svc Services) {
	taskHandler := NewTaskHandler(svc.Tasks, svc.Notifier)
	projectHandler := NewProjectHandler(svc.Projects)
	userHandler := NewUserHandler(svc.Users)

	api.Use(middleware.RequireAuth())

	me := api.Group("/me")
	{
		me.GET("", userHandler.GetCurrentUser)
		me.PATCH("/settings", userHandler.UpdateSettings)
		me.POST("/logout", userHandler.Logout)
		me.GET("/tasks", taskHandler.GetTasksBetween)
		me.GET("/reminders", taskHandler.GetRemindingTasks)
	}

	projects := api.Group("/projects")
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", middleware.RequireProjectAccess(svc.Projects), projectHandler.GetProject)
		projects.POST("/:id/members", middleware.RequireProjectAccess(svc.Projects), middleware.RequireProjectOwner(), projectHandler.InviteMember)
		projects.POST("/:id/accept", projectHandler.AcceptInvitation)
		projects.GET("/:id/tasks", taskHandler.GetTasks)
		projects.POST("/:id/tasks", taskHandler.CreateTask)
		projects.PUT("/:id/tasks/order", taskHandler.UpdateTaskOrder)
		projects.GET("/:id/completed-tasks", taskHandler.GetCompletedTasks)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("/:id", middleware.RequireTaskAccess(svc.Tasks), taskHandler.GetTask)
		tasks.PATCH("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.POST("/:id/complete", taskHandler.CompleteTask)
		tasks.POST("/:id/move", taskHandler.MoveTask)
	}

	completed := api.Group("/completed-tasks")
	{
		completed.GET("/:id", taskHandler.GetCompletedTask)
		completed.POST("/:id/uncomplete", taskHandler.UncompleteTask)
		completed.DELETE("/:id", taskHandler.DeleteCompletedTask)
	}
}
