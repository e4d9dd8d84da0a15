package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/subject"
)

// subjectRepository resolves joins against the teacher and student tables in
// the application, mirroring the pipelines run by the document store.
type subjectRepository struct {
	db *DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db}
}

func sameStudents(a, b []primitive.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (repo *subjectRepository) CheckSubjectUniqueness(_ context.Context, key subject.Subject) error {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	for _, sub := range repo.db.subject.table {
		if sub.Department == key.Department && sub.Name == key.Name &&
			sub.Teacher == key.Teacher && sameStudents(sub.Students, key.Students) {
			return subject.ErrExists
		}
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(_ context.Context, sub subject.Subject) (subject.Subject, error) {
	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	sub.ID = primitive.NewObjectID()
	repo.db.subject.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) GetSubject(_ context.Context, id primitive.ObjectID) (subject.Detail, error) {
	repo.db.subject.RLock()
	sub, ok := repo.db.subject.table[id]
	repo.db.subject.RUnlock()
	if !ok {
		return subject.Detail{}, subject.ErrNotFound
	}

	detail := subject.Detail{
		ID:         sub.ID,
		Department: sub.Department,
		Semester:   sub.Semester,
		Year:       sub.Year,
		Name:       sub.Name,
		Students:   repo.roster(sub.Students),
	}

	repo.db.teacher.RLock()
	if t, ok := repo.db.teacher.table[sub.Teacher]; ok {
		detail.Teacher = subject.TeacherRef{ID: t.ID, Name: t.Name}
	}
	repo.db.teacher.RUnlock()

	return detail, nil
}

func (repo *subjectRepository) roster(ids []primitive.ObjectID) []subject.EnrolledStudent {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	roster := make([]subject.EnrolledStudent, 0, len(ids))
	for _, sid := range ids {
		if s, ok := repo.db.student.table[sid]; ok {
			roster = append(roster, subject.EnrolledStudent{ID: s.ID, Name: s.Name})
		}
	}
	return roster
}

func (repo *subjectRepository) ListByTeacher(_ context.Context, teacherID primitive.ObjectID) ([]subject.TeacherSubject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	subjects := make([]subject.TeacherSubject, 0)
	for _, sub := range repo.db.subject.table {
		if sub.Teacher == teacherID {
			subjects = append(subjects, subject.TeacherSubject{
				ID:         sub.ID,
				Department: sub.Department,
				Semester:   sub.Semester,
				Year:       sub.Year,
				Name:       sub.Name,
				Teacher:    sub.Teacher,
			})
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return lessID(subjects[i].ID, subjects[j].ID) })
	return subjects, nil
}

func (repo *subjectRepository) ListForStudent(_ context.Context, studentID primitive.ObjectID) ([]subject.StudentSubject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	subjects := make([]subject.StudentSubject, 0)
	for _, sub := range repo.db.subject.table {
		if !contains(sub.Students, studentID) {
			continue
		}
		repo.db.teacher.RLock()
		t, ok := repo.db.teacher.table[sub.Teacher]
		repo.db.teacher.RUnlock()
		if !ok {
			continue // unwind on a missing teacher drops the row
		}
		subjects = append(subjects, subject.StudentSubject{
			ID:       sub.ID,
			Semester: sub.Semester,
			Year:     sub.Year,
			Name:     sub.Name,
			Teacher:  subject.TeacherRef{ID: t.ID, Name: t.Name},
		})
	}
	sort.Slice(subjects, func(i, j int) bool { return lessID(subjects[i].ID, subjects[j].ID) })
	return subjects, nil
}

func (repo *subjectRepository) Catalog(_ context.Context, studentID primitive.ObjectID) ([]subject.CatalogSubject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	subjects := make([]subject.CatalogSubject, 0)
	for _, sub := range repo.db.subject.table {
		repo.db.teacher.RLock()
		t, ok := repo.db.teacher.table[sub.Teacher]
		repo.db.teacher.RUnlock()
		if !ok {
			continue
		}
		row := subject.CatalogSubject{
			ID:         sub.ID,
			Department: sub.Department,
			Semester:   sub.Semester,
			Year:       sub.Year,
			Name:       sub.Name,
			Students:   sub.Students,
			Joined:     contains(sub.Students, studentID),
		}
		row.Teacher.Name = t.Name
		subjects = append(subjects, row)
	}
	sort.Slice(subjects, func(i, j int) bool { return lessID(subjects[i].ID, subjects[j].ID) })
	return subjects, nil
}

func (repo *subjectRepository) ListStudents(_ context.Context, subjectID primitive.ObjectID) ([]subject.EnrolledStudent, error) {
	repo.db.subject.RLock()
	sub, ok := repo.db.subject.table[subjectID]
	repo.db.subject.RUnlock()
	if !ok {
		return nil, subject.ErrNotFound
	}
	return repo.roster(sub.Students), nil
}

func (repo *subjectRepository) ReplaceStudents(_ context.Context, subjectID primitive.ObjectID, students []primitive.ObjectID) error {
	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	sub, ok := repo.db.subject.table[subjectID]
	if !ok {
		return subject.ErrNotFound
	}
	sub.Students = students
	return nil
}

func (repo *subjectRepository) DeleteSubject(_ context.Context, id primitive.ObjectID) error {
	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	if _, ok := repo.db.subject.table[id]; !ok {
		return subject.ErrNotFound
	}
	delete(repo.db.subject.table, id)
	return nil
}
