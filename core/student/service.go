package student

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound          = core.NewNotFoundError("User not found")
	ErrIncorrectPassword = core.NewUnauthorizedError("Incorrect Password")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id primitive.ObjectID) (Student, error)
		GetStudentByUsername(ctx context.Context, username string) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate verifies a student's credentials and returns their profile.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (Profile, error) {
	s, err := svc.repo.GetStudentByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		return Profile{}, err
	}
	if err := s.CheckPassword(password); err != nil {
		return Profile{}, ErrIncorrectPassword
	}
	return Profile{ID: s.ID, Name: s.Name, Role: Role}, nil
}

// Create registers a new Student. Unlike teachers, no duplicate-username check
// is performed before insertion; two students may share a username.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	s := Student{
		Name:     ns.Name,
		Email:    ns.Email,
		Course:   ns.Course,
		Username: ns.Username,
		Semester: ns.Semester,
	}
	if err := s.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, s)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Student, error) {
	return svc.repo.GetStudentByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, orig Student, us UpdateStudent) (Student, error) {
	s := orig
	if us.Name != "" {
		s.Name = us.Name
	}
	if us.Email != "" {
		s.Email = us.Email
	}
	if us.Course != "" {
		s.Course = us.Course
	}
	if us.Username != "" {
		s.Username = us.Username
	}
	if us.Semester != "" {
		s.Semester = us.Semester
	}
	if us.Password != "" {
		if err := s.SetPassword(us.Password); err != nil {
			return Student{}, err
		}
	}
	return svc.repo.UpdateStudent(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteStudent(ctx, id)
}
