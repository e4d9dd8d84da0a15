package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) CheckTeacherUniqueness(_ context.Context, teacherID primitive.ObjectID) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, ts := range repo.db.table {
		if ts.Teacher == teacherID {
			return schedule.ErrExists
		}
	}
	return nil
}

func (repo *scheduleRepository) CreateTimeSchedule(ctx context.Context, ts schedule.TimeSchedule) (schedule.TimeSchedule, error) {
	if err := repo.CheckTeacherUniqueness(ctx, ts.Teacher); err != nil {
		return schedule.TimeSchedule{}, err
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	ts.ID = primitive.NewObjectID()
	repo.db.table[ts.ID] = &ts
	return ts, nil
}

func (repo *scheduleRepository) QueryAllTimeSchedules(_ context.Context) ([]schedule.TimeSchedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	schedules := make([]schedule.TimeSchedule, 0, len(repo.db.table))
	for _, ts := range repo.db.table {
		schedules = append(schedules, *ts)
	}
	sort.Slice(schedules, func(i, j int) bool { return lessID(schedules[i].ID, schedules[j].ID) })
	return schedules, nil
}

func (repo *scheduleRepository) GetTimeScheduleByTeacher(_ context.Context, teacherID primitive.ObjectID) (schedule.TimeSchedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, ts := range repo.db.table {
		if ts.Teacher == teacherID {
			return *ts, nil
		}
	}
	return schedule.TimeSchedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) UpdateTimeSchedule(_ context.Context, ts schedule.TimeSchedule) (schedule.TimeSchedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ts.ID]; !ok {
		return schedule.TimeSchedule{}, schedule.ErrNotFound
	}
	repo.db.table[ts.ID] = &ts
	return ts, nil
}

func (repo *scheduleRepository) DeleteTimeScheduleByTeacher(_ context.Context, teacherID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, ts := range repo.db.table {
		if ts.Teacher == teacherID {
			delete(repo.db.table, id)
			return nil
		}
	}
	return schedule.ErrNotFound
}
