package echoapi

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

type messageResponse struct {
	Message string `json:"message"`
}

// pathID parses a hex record id from a route param. A malformed id is a
// client error, not a lookup miss.
func pathID(ctx echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		return primitive.NilObjectID, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a valid object id"})
	}
	return id, nil
}
