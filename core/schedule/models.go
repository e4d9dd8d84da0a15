package schedule

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeSchedule is a teacher's weekly timetable: ordered period lists keyed by
// day name. One schedule per teacher.
type TimeSchedule struct {
	ID       primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Teacher  primitive.ObjectID  `json:"teacher" bson:"teacher"`
	Schedule map[string][]string `json:"schedule" bson:"schedule"`
}

// NewTimeSchedule contains information needed to publish a teacher's timetable.
type NewTimeSchedule struct {
	Schedule map[string][]string `json:"schedule" validate:"required"`

	teacherID primitive.ObjectID
}

func (ns *NewTimeSchedule) Validate(ctx context.Context, validate *validator.Validate, svc *Service, teacherID primitive.ObjectID) error {
	if err := validate.Struct(ns); err != nil {
		return err
	}
	ns.teacherID = teacherID
	return svc.checkUniqueness(ctx, teacherID)
}

// UpdateTimeSchedule replaces the timetable wholesale.
type UpdateTimeSchedule struct {
	Schedule map[string][]string `json:"schedule" validate:"required"`
}

func (us *UpdateTimeSchedule) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
