package notes

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

// Note is a study note attached to a Subject.
type Note struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Subject   primitive.ObjectID `json:"subject" bson:"subject"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"` // UTC
}

// NewNote contains information needed to publish a note under a subject; the
// subject reference comes from the route.
type NewNote struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`

	subjectID primitive.ObjectID
}

func (nn *NewNote) Validate(ctx context.Context, validate *validator.Validate, svc *Service, subjectID primitive.ObjectID) error {
	nn.Title = core.CleanString(nn.Title)

	if err := validate.Struct(nn); err != nil {
		return err
	}
	nn.subjectID = subjectID
	return svc.checkUniqueness(ctx, subjectID, nn.Title, nn.Body)
}

// UpdateNote requires every field to be resent but only re-persists the title
// and body; the subject reference of an existing note never changes.
type UpdateNote struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

func (un *UpdateNote) Validate(validate *validator.Validate) error {
	un.Title = core.CleanString(un.Title)
	return validate.Struct(un)
}
