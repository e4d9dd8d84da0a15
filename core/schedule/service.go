package schedule

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("No Time Schedule found")
	ErrExists   = core.NewConflictError("Time Schedule already exists")
)

type (
	Repository interface {
		// CheckTeacherUniqueness reports ErrExists if the teacher already has a
		// published timetable.
		CheckTeacherUniqueness(ctx context.Context, teacherID primitive.ObjectID) error
		CreateTimeSchedule(ctx context.Context, ts TimeSchedule) (TimeSchedule, error)
		QueryAllTimeSchedules(ctx context.Context) ([]TimeSchedule, error)
		GetTimeScheduleByTeacher(ctx context.Context, teacherID primitive.ObjectID) (TimeSchedule, error)
		UpdateTimeSchedule(ctx context.Context, ts TimeSchedule) (TimeSchedule, error)
		DeleteTimeScheduleByTeacher(ctx context.Context, teacherID primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, teacherID primitive.ObjectID) error {
	return svc.repo.CheckTeacherUniqueness(ctx, teacherID)
}

func (svc *Service) Create(ctx context.Context, ns NewTimeSchedule) (TimeSchedule, error) {
	return svc.repo.CreateTimeSchedule(ctx, TimeSchedule{Teacher: ns.teacherID, Schedule: ns.Schedule})
}

func (svc *Service) QueryAll(ctx context.Context) ([]TimeSchedule, error) {
	return svc.repo.QueryAllTimeSchedules(ctx)
}

func (svc *Service) GetByTeacher(ctx context.Context, teacherID primitive.ObjectID) (TimeSchedule, error) {
	return svc.repo.GetTimeScheduleByTeacher(ctx, teacherID)
}

func (svc *Service) Update(ctx context.Context, orig TimeSchedule, us UpdateTimeSchedule) (TimeSchedule, error) {
	ts := orig
	ts.Schedule = us.Schedule
	return svc.repo.UpdateTimeSchedule(ctx, ts)
}

func (svc *Service) DeleteByTeacher(ctx context.Context, teacherID primitive.ObjectID) error {
	return svc.repo.DeleteTimeScheduleByTeacher(ctx, teacherID)
}
