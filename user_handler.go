package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers retrieves all users
func GetUsers(c echo.Context) error {
	st := storeFrom(c)
	users, err := st.Users.All(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserByID retrieves a single user
func GetUserByID(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	user, err := st.Users.ByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser registers a new user with a hashed password
func CreateUser(c echo.Context) error {
	var dto CreateUserDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.Name == "" || dto.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing name or password"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, err)
	}

	st := storeFrom(c)
	user := &User{Name: dto.Name, Password: string(hashed)}
	id, err := st.Users.Create(c.Request().Context(), user)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "user created", "id": id})
}

// UpdateUser replaces a user's name and password; both are required
func UpdateUser(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var dto UpdateUserDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.Name == "" || dto.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing name or password"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, err)
	}

	st := storeFrom(c)
	user, err := st.Users.Update(c.Request().Context(), id, UserUpdate{Name: dto.Name, Password: string(hashed)})
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "user updated", "user": user})
}

// DeleteUser removes a user. Tasks and categories that reference it keep
// their owner id; the dangling reference renders as null on reads.
func DeleteUser(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	err = st.Users.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "user deleted"})
}

// LoginUser checks credentials and returns a token. No server-side
// session is created; every route stays public.
func LoginUser(c echo.Context) error {
	var dto LoginDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}
	if dto.Name == "" || dto.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "missing name or password"})
	}

	st := storeFrom(c)
	user, err := st.Users.ByName(c.Request().Context(), dto.Name)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "invalid credentials"})
	}
	if err != nil {
		return internalError(c, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "invalid credentials"})
	}

	token, err := signToken(user, configFrom(c).JWTSecret)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "login successful", "name": user.Name, "token": token})
}

// SearchUsersByName lists users whose name contains the path fragment,
// case-insensitively
func SearchUsersByName(c echo.Context) error {
	st := storeFrom(c)
	users, err := st.Users.SearchByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserWithTasks returns a user together with every task they own
func GetUserWithTasks(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	st := storeFrom(c)
	ctx := c.Request().Context()

	user, err := st.Users.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	if err != nil {
		return internalError(c, err)
	}

	tasks, err := st.Tasks.ByOwner(ctx, id)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "tasks": tasks})
}
