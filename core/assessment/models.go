package assessment

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentMark is one student's internal assessment entry within a subject's
// record. All numeric fields are required; the name is denormalized for
// display and may be empty.
type StudentMark struct {
	Student    primitive.ObjectID `json:"student" bson:"student"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Test       int                `json:"test" bson:"test"`
	Seminar    int                `json:"seminar" bson:"seminar"`
	Assignment int                `json:"assignment" bson:"assignment"`
	Attendance int                `json:"attendance" bson:"attendance"`
	Total      int                `json:"total" bson:"total"`
}

// Internal is the internal assessment record of a Subject; one record per
// subject, holding every enrolled student's marks.
type Internal struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Subject primitive.ObjectID `json:"subject" bson:"subject"`
	Marks   []StudentMark      `json:"marks" bson:"marks"`
}

// StudentResult is one row of a student's marks across subjects: a single
// unwound mark entry with the subject's human-readable name attached.
type StudentResult struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Mark    StudentMark        `json:"marks" bson:"marks"`
	Subject string             `json:"subject" bson:"subject"`
}

type NewMark struct {
	Student    string `json:"student" validate:"required,objectid"`
	Name       string `json:"name"`
	Test       *int   `json:"test" validate:"required"`
	Seminar    *int   `json:"seminar" validate:"required"`
	Assignment *int   `json:"assignment" validate:"required"`
	Attendance *int   `json:"attendance" validate:"required"`
	Total      *int   `json:"total" validate:"required"`
}

func (nm NewMark) mark() StudentMark {
	sid, _ := primitive.ObjectIDFromHex(nm.Student)
	return StudentMark{
		Student:    sid,
		Name:       nm.Name,
		Test:       *nm.Test,
		Seminar:    *nm.Seminar,
		Assignment: *nm.Assignment,
		Attendance: *nm.Attendance,
		Total:      *nm.Total,
	}
}

// NewInternal contains information needed to record a subject's marks.
type NewInternal struct {
	Subject string    `json:"subject" validate:"required,objectid"`
	Marks   []NewMark `json:"marks" validate:"required,dive"`

	subjectID primitive.ObjectID
}

func (ni *NewInternal) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	if err := validate.Struct(ni); err != nil {
		return err
	}
	ni.subjectID, _ = primitive.ObjectIDFromHex(ni.Subject)
	return svc.checkUniqueness(ctx, ni.subjectID)
}

func (ni *NewInternal) internal() Internal {
	marks := make([]StudentMark, 0, len(ni.Marks))
	for _, nm := range ni.Marks {
		marks = append(marks, nm.mark())
	}
	return Internal{Subject: ni.subjectID, Marks: marks}
}

// UpdateInternal replaces a record's subject reference and marks wholesale.
// All fields must be resent; only subject and marks are re-persisted.
type UpdateInternal struct {
	ID      string    `json:"id" validate:"required,objectid"`
	Subject string    `json:"subject" validate:"required,objectid"`
	Marks   []NewMark `json:"marks" validate:"required,dive"`

	recordID  primitive.ObjectID
	subjectID primitive.ObjectID
}

func (ui *UpdateInternal) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	if err := validate.Struct(ui); err != nil {
		return err
	}
	ui.recordID, _ = primitive.ObjectIDFromHex(ui.ID)
	ui.subjectID, _ = primitive.ObjectIDFromHex(ui.Subject)
	return svc.checkUniqueness(ctx, ui.subjectID, ui.recordID)
}

func (ui *UpdateInternal) internal() Internal {
	marks := make([]StudentMark, 0, len(ui.Marks))
	for _, nm := range ui.Marks {
		marks = append(marks, nm.mark())
	}
	return Internal{ID: ui.recordID, Subject: ui.subjectID, Marks: marks}
}
