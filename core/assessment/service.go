package assessment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("No Existing Record(s) found. Add New Record.")
	ErrNoStudentMarks = core.NewNotFoundError("No Records Found.")
	ErrExists         = core.NewConflictError("Internal record already exists")
)

type (
	Repository interface {
		// CheckSubjectUniqueness reports ErrExists if a record other than
		// excludedRecords already holds marks for subjectID.
		CheckSubjectUniqueness(ctx context.Context, subjectID primitive.ObjectID, excludedRecords ...primitive.ObjectID) error
		CreateInternal(ctx context.Context, in Internal) (Internal, error)
		GetInternalBySubject(ctx context.Context, subjectID primitive.ObjectID) (Internal, error)
		GetInternalByID(ctx context.Context, id primitive.ObjectID) (Internal, error)
		// FilterByStudent returns one StudentResult per record in which studentID
		// appears in the marks array, with the subject name joined in.
		FilterByStudent(ctx context.Context, studentID primitive.ObjectID) ([]StudentResult, error)
		UpdateInternal(ctx context.Context, in Internal) (Internal, error)
		DeleteInternal(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, subjectID primitive.ObjectID, exclRecords ...primitive.ObjectID) error {
	return svc.repo.CheckSubjectUniqueness(ctx, subjectID, exclRecords...)
}

func (svc *Service) Create(ctx context.Context, ni NewInternal) (Internal, error) {
	return svc.repo.CreateInternal(ctx, ni.internal())
}

func (svc *Service) GetBySubject(ctx context.Context, subjectID primitive.ObjectID) (Internal, error) {
	return svc.repo.GetInternalBySubject(ctx, subjectID)
}

// FilterByStudent collects a student's marks across all subjects. An empty
// result is reported as ErrNoStudentMarks.
func (svc *Service) FilterByStudent(ctx context.Context, studentID primitive.ObjectID) ([]StudentResult, error) {
	results, err := svc.repo.FilterByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoStudentMarks
	}
	return results, nil
}

func (svc *Service) Update(ctx context.Context, ui UpdateInternal) (Internal, error) {
	return svc.repo.UpdateInternal(ctx, ui.internal())
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteInternal(ctx, id)
}
