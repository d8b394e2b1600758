package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetCategories retrieves all categories with their owner populated
func GetCategories(c echo.Context) error {
	st := storeFrom(c)
	cats, err := st.Categories.All(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

// GetCategoryByID retrieves a single category
func GetCategoryByID(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	cat, err := st.Categories.ByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

// CreateCategory creates a new category; only the name is required
func CreateCategory(c echo.Context) error {
	var dto CreateCategoryDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing required field (name)"})
	}

	cat := &Category{Name: dto.Name, Description: dto.Description}
	if dto.Owner != "" {
		owner, err := primitive.ObjectIDFromHex(dto.Owner)
		if err != nil {
			return invalidID(c)
		}
		cat.Owner = &owner
	}

	st := storeFrom(c)
	id, err := st.Categories.Create(c.Request().Context(), cat)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "category created", "id": id})
}

// UpdateCategory applies a partial update; only supplied fields change
func UpdateCategory(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var dto UpdateCategoryDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}

	patch := CategoryPatch{Name: dto.Name, Description: dto.Description}
	if patch.IsEmpty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "no fields to update"})
	}

	st := storeFrom(c)
	cat, err := st.Categories.Update(c.Request().Context(), id, patch)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "category updated", "category": cat})
}

// DeleteCategory removes a category. Tasks filed under it keep the
// dangling reference.
func DeleteCategory(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	err = st.Categories.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "category deleted"})
}

// AssignCategoryOwner sets a category's owner reference
func AssignCategoryOwner(c echo.Context) error {
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

	cat, err := st.Categories.Update(ctx, id, CategoryPatch{Owner: &owner})
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "owner assigned", "category": cat})
}

// GetCategoriesByOwner lists categories owned by the given user
func GetCategoriesByOwner(c echo.Context) error {
	owner, err := objectIDParam(c, "ownerId")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	cats, err := st.Categories.ByOwner(c.Request().Context(), owner)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}
