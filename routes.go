package main

import (
	"github.com/labstack/echo/v4"
)

// Route registers all available routes
func Route(e *echo.Echo) {
	e.GET("/", Index)
	e.GET("/healthz", Healthz)

	users := e.Group("/users")
	users.GET("", GetUsers)
	users.POST("", CreateUser)
	users.POST("/login", LoginUser)
	users.GET("/search/:name", SearchUsersByName)
	users.GET("/:id", GetUserByID)
	users.PUT("/:id", UpdateUser)
	users.DELETE("/:id", DeleteUser)
	users.GET("/:id/tasks", GetUserWithTasks)

	tasks := e.Group("/tasks")
	tasks.GET("", GetTasks)
	tasks.POST("", CreateTask)
	tasks.GET("/owner/:ownerId", GetTasksByOwner)
	tasks.GET("/category/:categoryId", GetTasksByCategory)
	tasks.GET("/:id", GetTaskByID)
	tasks.PUT("/:id", UpdateTask)
	tasks.DELETE("/:id", DeleteTask)
	tasks.PUT("/:id/assign", AssignTaskOwner)
	tasks.PUT("/:id/category", AssignTaskCategory)

	categories := e.Group("/categories")
	categories.GET("", GetCategories)
	categories.POST("", CreateCategory)
	categories.GET("/owner/:ownerId", GetCategoriesByOwner)
	categories.GET("/:id", GetCategoryByID)
	categories.PUT("/:id", UpdateCategory)
	categories.DELETE("/:id", DeleteCategory)
	categories.PUT("/:id/assign", AssignCategoryOwner)
}
