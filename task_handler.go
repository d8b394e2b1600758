package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetTasks retrieves all tasks with their references populated
func GetTasks(c echo.Context) error {
	st := storeFrom(c)
	tasks, err := st.Tasks.All(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTaskByID retrieves a single task
func GetTaskByID(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	task, err := st.Tasks.ByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "task not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task; the owner reference is optional
func CreateTask(c echo.Context) error {
	var dto CreateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.Title == "" || dto.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing required fields (title, description)"})
	}

	task := &Task{Title: dto.Title, Description: dto.Description}
	if dto.Owner != "" {
		owner, err := primitive.ObjectIDFromHex(dto.Owner)
		if err != nil {
			return invalidID(c)
		}
		task.Owner = &owner
	}

	st := storeFrom(c)
	id, err := st.Tasks.Create(c.Request().Context(), task)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "task created", "id": id})
}

// UpdateTask applies a partial update; only supplied fields change
func UpdateTask(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var dto UpdateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}

	patch := TaskPatch{Title: dto.Title, Description: dto.Description, Completed: dto.Completed}
	if patch.IsEmpty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "no fields to update"})
	}

	st := storeFrom(c)
	task, err := st.Tasks.Update(c.Request().Context(), id, patch)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "task not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "task updated", "task": task})
}

// DeleteTask removes a task
func DeleteTask(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	err = st.Tasks.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "task not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "task deleted"})
}

// AssignTaskOwner sets a task's owner reference. With strict refs
// enabled the owner must exist; otherwise the id is stored as given.
func AssignTaskOwner(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var dto AssignOwnerDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.OwnerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing ownerId"})
	}
	owner, err := primitive.ObjectIDFromHex(dto.OwnerID)
	if err != nil {
		return invalidID(c)
	}

	st := storeFrom(c)
	ctx := c.Request().Context()
	if configFrom(c).StrictRefs {
		ok, err := st.Users.Exists(ctx, owner)
		if err != nil {
			return internalError(c, err)
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "owner does not exist"})
		}
	}

	task, err := st.Tasks.Update(ctx, id, TaskPatch{Owner: &owner})
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "task not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "owner assigned", "task": task})
}

// AssignTaskCategory sets a task's category reference
func AssignTaskCategory(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var dto AssignCategoryDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.CategoryID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing categoryId"})
	}
	category, err := primitive.ObjectIDFromHex(dto.CategoryID)
	if err != nil {
		return invalidID(c)
	}

	st := storeFrom(c)
	ctx := c.Request().Context()
	if configFrom(c).StrictRefs {
		ok, err := st.Categories.Exists(ctx, category)
		if err != nil {
			return internalError(c, err)
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "category does not exist"})
		}
	}

	task, err := st.Tasks.Update(ctx, id, TaskPatch{Category: &category})
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "task not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "category assigned", "task": task})
}

// GetTasksByOwner lists tasks owned by the given user; an unknown owner
// yields an empty list, not an error
func GetTasksByOwner(c echo.Context) error {
	owner, err := objectIDParam(c, "ownerId")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	tasks, err := st.Tasks.ByOwner(c.Request().Context(), owner)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTasksByCategory lists tasks filed under the given category
func GetTasksByCategory(c echo.Context) error {
	category, err := objectIDParam(c, "categoryId")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	tasks, err := st.Tasks.ByCategory(c.Request().Context(), category)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}
