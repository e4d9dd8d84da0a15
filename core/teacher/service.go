package teacher

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound          = core.NewNotFoundError("User not found")
	ErrUsernameExists    = core.NewConflictError("Teacher already exists")
	ErrNotApproved       = core.NewNotApprovedError("User not Approved")
	ErrIncorrectPassword = core.NewUnauthorizedError("Incorrect Password")
)

type (
	Repository interface {
		// CheckUsernameUniqueness reports ErrUsernameExists if a Teacher other than
		// excludedTeachers holds the given username.
		CheckUsernameUniqueness(ctx context.Context, username string, excludedTeachers ...Teacher) error
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id primitive.ObjectID) (Teacher, error)
		GetTeacherByUsername(ctx context.Context, username string) (Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname string, exclTeachers ...Teacher) error {
	return svc.repo.CheckUsernameUniqueness(ctx, uname, exclTeachers...)
}

// Authenticate verifies a teacher's credentials and returns their profile.
// The approval gate is checked after existence and before the password so that
// a gated account always reads as ErrNotApproved, never ErrIncorrectPassword.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (Profile, error) {
	t, err := svc.repo.GetTeacherByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		return Profile{}, err
	}
	if !t.IsApproved() {
		return Profile{}, ErrNotApproved
	}
	if err := t.CheckPassword(password); err != nil {
		return Profile{}, ErrIncorrectPassword
	}
	return Profile{ID: t.ID, Name: t.Name, Role: t.Role, Department: t.Department}, nil
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	t := Teacher{
		Name:       nt.Name,
		Username:   nt.Username,
		Department: nt.Department,
	}
	if err := t.SetPassword(nt.Password); err != nil {
		return Teacher{}, err
	}
	return svc.repo.CreateTeacher(ctx, t)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Teacher, error) {
	return svc.repo.GetTeacherByUsername(ctx, core.CleanString(uname, true /* lower */))
}

// Update re-persists the merge of orig and ut. Unset fields keep their stored
// value; there is no optimistic concurrency check (last write wins).
func (svc *Service) Update(ctx context.Context, orig Teacher, ut UpdateTeacher) (Teacher, error) {
	t := orig
	t.Username = ut.Username
	if ut.Name != "" {
		t.Name = ut.Name
	}
	if ut.Department != "" {
		t.Department = ut.Department
	}
	if ut.Role != "" {
		t.Role = ut.Role
	}
	if ut.Password != "" {
		if err := t.SetPassword(ut.Password); err != nil {
			return Teacher{}, err
		}
	}
	return svc.repo.UpdateTeacher(ctx, t)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteTeacher(ctx, id)
}
