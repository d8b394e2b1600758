package main

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Index describes the API surface
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Users and tasks API with relations",
		"endpoints": echo.Map{
			"users":      "/users",
			"tasks":      "/tasks",
			"categories": "/categories",
		},
	})
}

// objectIDParam parses the named path parameter as a document id. The
// caller turns a parse failure into a 400.
func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param(name))
}

// invalidID is the 400 response for a malformed identifier
func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
}

// internalError logs a store failure and maps it to a 500 with the
// underlying message
func internalError(c echo.Context, err error) error {
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"msg": err.Error()})
}

// signToken issues the login JWT: HS256, 72 hour expiry, name and user
// id claims
func signToken(u *User, secret string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.Hex()
	claims["name"] = u.Name
	claims["exp"] = time.Now().Add(72 * time.Hour).Unix()
	return token.SignedString([]byte(secret))
}
