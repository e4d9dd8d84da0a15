package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tshims/shule/core/subject"
)

func Test_subjectApi_create(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	std := createStudent(t, "Alain Kalonji", "akalonji", "s3cr3t")

	body := []byte(fmt.Sprintf(
		`{"department":"CS","semester":"I","year":"2026","subject":"Algorithms","students":["%s"],"teacher":"%s"}`,
		std.ID.Hex(), tch.ID.Hex(),
	))

	tests := []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/subject", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "bad student id", method: http.MethodPost, path: "/subject",
			body: []byte(fmt.Sprintf(
				`{"department":"CS","semester":"I","year":"2026","subject":"Algorithms","students":["nope"],"teacher":"%s"}`,
				tch.ID.Hex(),
			)),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "create", method: http.MethodPost, path: "/subject", body: body,
			wantCode: http.StatusCreated,
			wantData: marshallObj(t, httpErr{Message: "New Subject Algorithms added"}),
		},
		{
			// the same composite key must conflict on a second submission
			name: "duplicate", method: http.MethodPost, path: "/subject", body: body,
			wantCode: http.StatusConflict,
			wantData: marshallObj(t, httpErr{Message: "Subject already exists"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_subjectApi_listings(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	enrolled := createStudent(t, "Alain Kalonji", "akalonji", "s3cr3t")
	other := createStudent(t, "Grace Ilunga", "gilunga", "s3cr3t")

	algo := createSubject(t, "Algorithms", tch.ID, enrolled.ID)
	nets := createSubject(t, "Networks", tch.ID)

	teacherRow := func(sub subject.Subject) subject.TeacherSubject {
		return subject.TeacherSubject{
			ID:         sub.ID,
			Department: sub.Department,
			Semester:   sub.Semester,
			Year:       sub.Year,
			Name:       sub.Name,
			Teacher:    sub.Teacher,
		}
	}
	catalogRow := func(sub subject.Subject, joined bool) subject.CatalogSubject {
		row := subject.CatalogSubject{
			ID:         sub.ID,
			Department: sub.Department,
			Semester:   sub.Semester,
			Year:       sub.Year,
			Name:       sub.Name,
			Students:   sub.Students,
			Joined:     joined,
		}
		row.Teacher.Name = tch.Name
		return row
	}

	tests := []httpTest{
		{
			// the enrollment set is withheld from a teacher's listing
			name: "by teacher", path: "/subject/teacher/" + tch.ID.Hex(),
			wantData: marshallList(t, teacherRow(algo), teacherRow(nets)),
		},
		{name: "by unknown teacher", path: "/subject/teacher/ffffffffffffffffffffffff", wantData: []byte(`[]`)},
		{
			name: "for enrolled student", path: "/subject/student/" + enrolled.ID.Hex(),
			wantData: marshallList(t, subject.StudentSubject{
				ID:       algo.ID,
				Semester: algo.Semester,
				Year:     algo.Year,
				Name:     algo.Name,
				Teacher:  subject.TeacherRef{ID: tch.ID, Name: tch.Name},
			}),
		},
		{name: "for unenrolled student", path: "/subject/student/" + other.ID.Hex(), wantData: []byte(`[]`)},
		{
			name: "catalog flags enrollment", path: "/subject/manage/" + enrolled.ID.Hex(),
			wantData: marshallList(t, catalogRow(algo, true), catalogRow(nets, false)),
		},
		{
			name: "roster", path: "/subject/students/" + algo.ID.Hex(),
			wantData: marshallList(t, subject.EnrolledStudent{ID: enrolled.ID, Name: enrolled.Name}),
		},
		{
			name: "detail", path: "/subject/" + algo.ID.Hex(),
			wantData: marshallObj(t, subject.Detail{
				ID:         algo.ID,
				Department: algo.Department,
				Semester:   algo.Semester,
				Year:       algo.Year,
				Name:       algo.Name,
				Students:   []subject.EnrolledStudent{{ID: enrolled.ID, Name: enrolled.Name}},
				Teacher:    subject.TeacherRef{ID: tch.ID, Name: tch.Name},
			}),
		},
		{
			name: "detail unknown", path: "/subject/ffffffffffffffffffffffff",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "No Subject(s) found"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_subjectApi_updateStudents(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	s1 := createStudent(t, "Alain Kalonji", "akalonji", "s3cr3t")
	s2 := createStudent(t, "Grace Ilunga", "gilunga", "s3cr3t")

	algo := createSubject(t, "Algorithms", tch.ID, s1.ID)

	tests := []httpTest{
		{
			name: "replace enrollment", method: http.MethodPatch, path: "/subject/" + algo.ID.Hex(),
			body:     []byte(fmt.Sprintf(`{"students":["%s"]}`, s2.ID.Hex())),
			wantData: marshallObj(t, httpErr{Message: "Updated"}),
		},
		// enrollment listings must follow the replaced set
		{name: "dropped student sees nothing", path: "/subject/student/" + s1.ID.Hex(), wantData: []byte(`[]`)},
		{
			name: "added student sees the subject", path: "/subject/student/" + s2.ID.Hex(),
			wantData: marshallList(t, subject.StudentSubject{
				ID:       algo.ID,
				Semester: algo.Semester,
				Year:     algo.Year,
				Name:     algo.Name,
				Teacher:  subject.TeacherRef{ID: tch.ID, Name: tch.Name},
			}),
		},
		{
			name: "unknown subject", method: http.MethodPatch, path: "/subject/ffffffffffffffffffffffff",
			body:     []byte(fmt.Sprintf(`{"students":["%s"]}`, s2.ID.Hex())),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "No Subject(s) found"}),
		},
	}
	runHTTPTests(t, tests)
}

// Deleting a subject leaves its assessment records and notes behind;
// they stay fetchable by their own ids.
func Test_subjectApi_destroyOrphansRecords(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	std := createStudent(t, "Alain Kalonji", "akalonji", "s3cr3t")

	algo := createSubject(t, "Algorithms", tch.ID, std.ID)
	in := createInternal(t, algo.ID, mark(std.ID, std.Name, 10, 10, 10, 10))
	note := createNote(t, algo.ID, "Big O", "Growth rates.")

	tests := []httpTest{
		{
			name: "delete", method: http.MethodDelete, path: "/subject/" + algo.ID.Hex(),
			wantData: marshallObj(t, httpErr{Message: "Algorithms deleted"}),
		},
		{
			name: "gone", path: "/subject/" + algo.ID.Hex(),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "No Subject(s) found"}),
		},
		{name: "internal record survives", path: "/internal/" + algo.ID.Hex(), wantData: marshallObj(t, in)},
		{name: "note survives", path: "/notes/" + note.ID.Hex(), wantData: marshallObj(t, note)},
	}
	runHTTPTests(t, tests)
}
