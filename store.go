package main

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by store lookups when no document matches the
// given id.
var ErrNotFound = errors.New("document not found")

// UserStore is the persistence adapter for users.
type UserStore interface {
	All(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	ByName(ctx context.Context, name string) (*User, error)
	SearchByName(ctx context.Context, fragment string) ([]User, error)
	Create(ctx context.Context, u *User) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TaskStore is the persistence adapter for tasks. Read operations return
// views with the owner and category references populated.
type TaskStore interface {
	All(ctx context.Context) ([]TaskView, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*TaskView, error)
	ByOwner(ctx context.Context, owner primitive.ObjectID) ([]TaskView, error)
	ByCategory(ctx context.Context, category primitive.ObjectID) ([]TaskView, error)
	Create(ctx context.Context, t *Task) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, patch TaskPatch) (*TaskView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryStore is the persistence adapter for categories.
type CategoryStore interface {
	All(ctx context.Context) ([]CategoryView, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*CategoryView, error)
	ByOwner(ctx context.Context, owner primitive.ObjectID) ([]CategoryView, error)
	Create(ctx context.Context, cat *Category) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) (*CategoryView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the per-entity adapters handed to the handlers.
type Store struct {
	Users      UserStore
	Tasks      TaskStore
	Categories CategoryStore
	Health     Pinger
}

// storeFrom pulls the store out of the request context; it is placed
// there by middleware in main.
func storeFrom(c echo.Context) *Store {
	return c.Get("store").(*Store)
}
