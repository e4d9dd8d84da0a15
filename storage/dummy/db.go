package dummydb

import (
	"bytes"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/assessment"
	"github.com/tshims/shule/core/notes"
	"github.com/tshims/shule/core/schedule"
	"github.com/tshims/shule/core/student"
	"github.com/tshims/shule/core/subject"
	"github.com/tshims/shule/core/teacher"
)

// DB is an in-memory stand-in for the document store, used by tests.
type (
	DB struct {
		teacher  *teacherTable
		student  *studentTable
		subject  *subjectTable
		internal *internalTable
		notes    *notesTable
		schedule *scheduleTable
	}

	teacherTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*teacher.Teacher
	}

	studentTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*student.Student
	}

	subjectTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*subject.Subject
	}

	internalTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*assessment.Internal
	}

	notesTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*notes.Note
	}

	scheduleTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*schedule.TimeSchedule
	}
)

func Open() (*DB, error) {
	db := &DB{
		teacher:  &teacherTable{table: make(map[primitive.ObjectID]*teacher.Teacher)},
		student:  &studentTable{table: make(map[primitive.ObjectID]*student.Student)},
		subject:  &subjectTable{table: make(map[primitive.ObjectID]*subject.Subject)},
		internal: &internalTable{table: make(map[primitive.ObjectID]*assessment.Internal)},
		notes:    &notesTable{table: make(map[primitive.ObjectID]*notes.Note)},
		schedule: &scheduleTable{table: make(map[primitive.ObjectID]*schedule.TimeSchedule)},
	}
	return db, nil
}

// Reset clears every table; tests call it to start from a clean slate.
func (db *DB) Reset() {
	db.teacher.Lock()
	db.teacher.table = make(map[primitive.ObjectID]*teacher.Teacher)
	db.teacher.Unlock()

	db.student.Lock()
	db.student.table = make(map[primitive.ObjectID]*student.Student)
	db.student.Unlock()

	db.subject.Lock()
	db.subject.table = make(map[primitive.ObjectID]*subject.Subject)
	db.subject.Unlock()

	db.internal.Lock()
	db.internal.table = make(map[primitive.ObjectID]*assessment.Internal)
	db.internal.Unlock()

	db.notes.Lock()
	db.notes.table = make(map[primitive.ObjectID]*notes.Note)
	db.notes.Unlock()

	db.schedule.Lock()
	db.schedule.table = make(map[primitive.ObjectID]*schedule.TimeSchedule)
	db.schedule.Unlock()
}

// lessID orders records the way the document store returns them: ids are
// monotonic, so ascending id is insertion order.
func lessID(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
