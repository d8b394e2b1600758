package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user
type User struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Password  string               `json:"-" bson:"password"`
	Projects  []primitive.ObjectID `json:"projects,omitempty" bson:"projects,omitempty"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Task represents a task item, optionally owned by a user and filed
// under a category
type Task struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	Completed   bool                `json:"completed" bson:"completed"`
	Owner       *primitive.ObjectID `json:"owner,omitempty" bson:"owner,omitempty"`
	Category    *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Category groups tasks and can itself belong to a user
type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Owner       *primitive.ObjectID `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// TaskPatch carries the task fields an update may change. Nil fields are
// left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Owner       *primitive.ObjectID
	Category    *primitive.ObjectID
}

// IsEmpty reports whether the patch would change nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Owner == nil && p.Category == nil
}

// CategoryPatch carries the category fields an update may change
type CategoryPatch struct {
	Name        *string
	Description *string
	Owner       *primitive.ObjectID
}

// IsEmpty reports whether the patch would change nothing
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Owner == nil
}

// UserUpdate is a full replacement of a user's mutable fields; both are
// required on update
type UserUpdate struct {
	Name     string
	Password string
}
