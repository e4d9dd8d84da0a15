package subject

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

type Subject struct {
	ID         primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Department string               `json:"department" bson:"department"`
	Semester   string               `json:"semester" bson:"semester"`
	Year       string               `json:"year" bson:"year"`
	Name       string               `json:"subject" bson:"subject"`
	Students   []primitive.ObjectID `json:"students" bson:"students"`
	Teacher    primitive.ObjectID   `json:"teacher" bson:"teacher"`
}

// TeacherRef is the joined slice of a Teacher a caller is expected to see.
type TeacherRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

// TeacherSubject is a Subject as listed on a teacher's dashboard;
// the enrolled-students set is withheld from the projection.
type TeacherSubject struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Department string             `json:"department" bson:"department"`
	Semester   string             `json:"semester" bson:"semester"`
	Year       string             `json:"year" bson:"year"`
	Name       string             `json:"subject" bson:"subject"`
	Teacher    primitive.ObjectID `json:"teacher" bson:"teacher"`
}

// StudentSubject is a Subject a given student is enrolled in, with the owning
// teacher joined in.
type StudentSubject struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Semester string             `json:"semester" bson:"semester"`
	Year     string             `json:"year" bson:"year"`
	Name     string             `json:"subject" bson:"subject"`
	Teacher  TeacherRef         `json:"teacher" bson:"teacher"`
}

// CatalogSubject is a catalog row for browse/enroll UIs: every Subject,
// annotated with whether the requesting student is already enrolled.
type CatalogSubject struct {
	ID         primitive.ObjectID   `json:"_id" bson:"_id"`
	Department string               `json:"department" bson:"department"`
	Semester   string               `json:"semester" bson:"semester"`
	Year       string               `json:"year" bson:"year"`
	Name       string               `json:"subject" bson:"subject"`
	Students   []primitive.ObjectID `json:"students" bson:"students"`
	Teacher    struct {
		Name string `json:"name" bson:"name"`
	} `json:"teacher" bson:"teacher"`
	Joined bool `json:"joined" bson:"joined"`
}

// EnrolledStudent is the projection of a Student on a subject's roster.
type EnrolledStudent struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

// Detail is a single Subject with teacher and student names resolved.
type Detail struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Department string             `json:"department" bson:"department"`
	Semester   string             `json:"semester" bson:"semester"`
	Year       string             `json:"year" bson:"year"`
	Name       string             `json:"subject" bson:"subject"`
	Students   []EnrolledStudent  `json:"students" bson:"students"`
	Teacher    TeacherRef         `json:"teacher" bson:"teacher"`
}

// NewSubject contains information needed to create a new Subject.
// References arrive as hex record ids and are parsed during validation.
type NewSubject struct {
	Department string   `json:"department" validate:"required"`
	Semester   string   `json:"semester" validate:"required"`
	Year       string   `json:"year" validate:"required"`
	Subject    string   `json:"subject" validate:"required"`
	Students   []string `json:"students" validate:"required,dive,objectid"`
	Teacher    string   `json:"teacher" validate:"required,objectid"`

	studentIDs []primitive.ObjectID
	teacherID  primitive.ObjectID
}

func (ns *NewSubject) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	ns.Department = core.CleanString(ns.Department)
	ns.Subject = core.CleanString(ns.Subject)

	if err := validate.Struct(ns); err != nil {
		return err
	}

	ns.teacherID, _ = primitive.ObjectIDFromHex(ns.Teacher)
	ns.studentIDs = make([]primitive.ObjectID, 0, len(ns.Students))
	for _, sid := range ns.Students {
		oid, _ := primitive.ObjectIDFromHex(sid)
		ns.studentIDs = append(ns.studentIDs, oid)
	}

	return svc.checkUniqueness(ctx, ns.subject())
}

func (ns *NewSubject) subject() Subject {
	return Subject{
		Department: ns.Department,
		Semester:   ns.Semester,
		Year:       ns.Year,
		Name:       ns.Subject,
		Students:   ns.studentIDs,
		Teacher:    ns.teacherID,
	}
}

// UpdateStudents replaces a subject's entire enrollment set. This is a full
// replace, not an incremental add/remove; concurrent replacements race and the
// last write wins.
type UpdateStudents struct {
	Students []string `json:"students" validate:"required,dive,objectid"`

	studentIDs []primitive.ObjectID
}

func (us *UpdateStudents) Validate(validate *validator.Validate) error {
	if err := validate.Struct(us); err != nil {
		return err
	}
	us.studentIDs = make([]primitive.ObjectID, 0, len(us.Students))
	for _, sid := range us.Students {
		oid, _ := primitive.ObjectIDFromHex(sid)
		us.studentIDs = append(us.studentIDs, oid)
	}
	return nil
}
