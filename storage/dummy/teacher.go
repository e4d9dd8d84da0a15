package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) CheckUsernameUniqueness(_ context.Context, username string, excludedTeachers ...teacher.Teacher) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.db.table {
		if t.Username != username {
			continue
		}
		excluded := false
		for _, excl := range excludedTeachers {
			if excl.ID == t.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return teacher.ErrUsernameExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	if err := repo.CheckUsernameUniqueness(ctx, t.Username); err != nil {
		return teacher.Teacher{}, err
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	t.ID = primitive.NewObjectID()
	repo.db.table[t.ID] = &t
	return t, nil
}

func (repo *teacherRepository) QueryAllTeachers(_ context.Context) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		teachers = append(teachers, *t)
	}
	sort.Slice(teachers, func(i, j int) bool { return lessID(teachers[i].ID, teachers[j].ID) })
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(_ context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByUsername(_ context.Context, username string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.db.table {
		if t.Username == username {
			return *t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	if err := repo.CheckUsernameUniqueness(ctx, t.Username, t); err != nil {
		return teacher.Teacher{}, err
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[t.ID]; !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	repo.db.table[t.ID] = &t
	return t, nil
}

func (repo *teacherRepository) DeleteTeacher(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
