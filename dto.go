package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateUserDTO for creating a new user
type CreateUserDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserDTO for updating an existing user; both fields are required
type UpdateUserDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginDTO for user authentication
type LoginDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateTaskDTO for creating a new task
type CreateTaskDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}

// UpdateTaskDTO for a partial task update; only supplied fields change
type UpdateTaskDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// CreateCategoryDTO for creating a new category
type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}

// UpdateCategoryDTO for a partial category update
type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AssignOwnerDTO names the user a task or category is assigned to
type AssignOwnerDTO struct {
	OwnerID string `json:"ownerId"`
}

// AssignCategoryDTO names the category a task is filed under
type AssignCategoryDTO struct {
	CategoryID string `json:"categoryId"`
}

// UserRef is the projection of a user returned when an owner reference
// is populated
type UserRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// CategoryRef is the projection of a category returned when a category
// reference is populated
type CategoryRef struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
}

// TaskView is a task with its references populated
type TaskView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Completed   bool               `json:"completed"`
	Owner       *UserRef           `json:"owner"`
	Category    *CategoryRef       `json:"category,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// CategoryView is a category with its owner reference populated
type CategoryView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Owner       *UserRef           `json:"owner"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
