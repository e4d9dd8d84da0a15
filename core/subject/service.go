package subject

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("No Subject(s) found")
	ErrExists   = core.NewConflictError("Subject already exists")
)

type (
	Repository interface {
		// CheckSubjectUniqueness reports ErrExists if a Subject with the same
		// department, name, enrollment set and teacher already exists. The check
		// and the subsequent insert are two separate calls; concurrent creators
		// can both pass it. See the service doc.
		CheckSubjectUniqueness(ctx context.Context, key Subject) error
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		// GetSubject resolves the teacher's and enrolled students' names.
		GetSubject(ctx context.Context, id primitive.ObjectID) (Detail, error)
		ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]TeacherSubject, error)
		// ListForStudent joins each Subject to its Teacher and keeps only those
		// whose enrollment set contains studentID.
		ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]StudentSubject, error)
		// Catalog returns every Subject annotated with a `joined` flag for studentID.
		Catalog(ctx context.Context, studentID primitive.ObjectID) ([]CatalogSubject, error)
		ListStudents(ctx context.Context, subjectID primitive.ObjectID) ([]EnrolledStudent, error)
		ReplaceStudents(ctx context.Context, subjectID primitive.ObjectID, students []primitive.ObjectID) error
		DeleteSubject(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, key Subject) error {
	return svc.repo.CheckSubjectUniqueness(ctx, key)
}

// Create inserts a new Subject after the duplicate pre-check ran during
// validation. The composite key includes the enrollment array, which a unique
// index cannot express, so the read-then-write race is a known limitation.
func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, ns.subject())
}

func (svc *Service) Get(ctx context.Context, id primitive.ObjectID) (Detail, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *Service) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]TeacherSubject, error) {
	return svc.repo.ListByTeacher(ctx, teacherID)
}

func (svc *Service) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]StudentSubject, error) {
	return svc.repo.ListForStudent(ctx, studentID)
}

func (svc *Service) Catalog(ctx context.Context, studentID primitive.ObjectID) ([]CatalogSubject, error) {
	return svc.repo.Catalog(ctx, studentID)
}

func (svc *Service) ListStudents(ctx context.Context, subjectID primitive.ObjectID) ([]EnrolledStudent, error) {
	return svc.repo.ListStudents(ctx, subjectID)
}

func (svc *Service) ReplaceStudents(ctx context.Context, subjectID primitive.ObjectID, us UpdateStudents) error {
	return svc.repo.ReplaceStudents(ctx, subjectID, us.studentIDs)
}

// Delete removes the Subject only. Internal and Notes records keep their
// subject references; no cascade is performed.
func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteSubject(ctx, id)
}
