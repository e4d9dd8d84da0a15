package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	echoapi "github.com/tshims/shule/apps/api/echo"
	"github.com/tshims/shule/core"
	"github.com/tshims/shule/core/assessment"
	"github.com/tshims/shule/core/notes"
	"github.com/tshims/shule/core/schedule"
	"github.com/tshims/shule/core/student"
	"github.com/tshims/shule/core/subject"
	"github.com/tshims/shule/core/teacher"
	emailsvc "github.com/tshims/shule/services/email"
	logsvc "github.com/tshims/shule/services/logger"
	dummydb "github.com/tshims/shule/storage/dummy"
)

var (
	app  echoapi.Server
	conf *core.Config
	db   *dummydb.DB

	teacherRepo  teacher.Repository
	studentRepo  student.Repository
	subjectRepo  subject.Repository
	internalRepo assessment.Repository
	notesRepo    notes.Repository
	scheduleRepo schedule.Repository
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		Env:              "TEST",
		Debug:            true,
		TestMode:         true,
		AppName:          "Shule",
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@localhost"},
	}

	// set up DB & repos
	db, _ = dummydb.Open()
	teacherRepo = dummydb.NewTeacherRepository(db)
	studentRepo = dummydb.NewStudentRepository(db)
	subjectRepo = dummydb.NewSubjectRepository(db)
	internalRepo = dummydb.NewInternalRepository(db)
	notesRepo = dummydb.NewNotesRepository(db)
	scheduleRepo = dummydb.NewScheduleRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleService(conf)
	teacherSvc := teacher.NewService(teacherRepo)
	studentSvc := student.NewService(studentRepo)
	subjectSvc := subject.NewService(subjectRepo)
	internalSvc := assessment.NewService(internalRepo)
	notesSvc := notes.NewService(notesRepo)
	scheduleSvc := schedule.NewService(scheduleRepo)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up server
	app = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logsvc.NewStdLogger(nil),
			MailSvc:        mailSvc,
			TeacherSvc:     teacherSvc,
			StudentSvc:     studentSvc,
			SubjectSvc:     subjectSvc,
			InternalSvc:    internalSvc,
			NotesSvc:       notesSvc,
			ScheduleSvc:    scheduleSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
	emailsvc.ClearSentMessages()
}

type httpErr struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func runHTTPTests(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// fixtures

func createTeacher(t *testing.T, name, username, password, department, role string) teacher.Teacher {
	t.Helper()
	tch := teacher.Teacher{Name: name, Username: username, Department: department, Role: role}
	if err := tch.SetPassword(password); err != nil {
		t.Fatalf("createTeacher(): %v", err)
	}
	tch, err := teacherRepo.CreateTeacher(context.Background(), tch)
	if err != nil {
		t.Fatalf("createTeacher(): %v", err)
	}
	return tch
}

func createStudent(t *testing.T, name, username, password string) student.Student {
	t.Helper()
	std := student.Student{
		Name:     name,
		Email:    username + "@test.cd",
		Course:   "CS",
		Username: username,
		Semester: "I",
	}
	if err := std.SetPassword(password); err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	std, err := studentRepo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return std
}

func createSubject(t *testing.T, name string, teacherID primitive.ObjectID, studentIDs ...primitive.ObjectID) subject.Subject {
	t.Helper()
	if studentIDs == nil {
		studentIDs = []primitive.ObjectID{}
	}
	sub, err := subjectRepo.CreateSubject(context.Background(), subject.Subject{
		Department: "CS",
		Semester:   "I",
		Year:       "2026",
		Name:       name,
		Students:   studentIDs,
		Teacher:    teacherID,
	})
	if err != nil {
		t.Fatalf("createSubject(): %v", err)
	}
	return sub
}

func createInternal(t *testing.T, subjectID primitive.ObjectID, marks ...assessment.StudentMark) assessment.Internal {
	t.Helper()
	if marks == nil {
		marks = []assessment.StudentMark{}
	}
	in, err := internalRepo.CreateInternal(context.Background(), assessment.Internal{Subject: subjectID, Marks: marks})
	if err != nil {
		t.Fatalf("createInternal(): %v", err)
	}
	return in
}

func mark(studentID primitive.ObjectID, name string, test, seminar, assignment, attendance int) assessment.StudentMark {
	return assessment.StudentMark{
		Student:    studentID,
		Name:       name,
		Test:       test,
		Seminar:    seminar,
		Assignment: assignment,
		Attendance: attendance,
		Total:      test + seminar + assignment + attendance,
	}
}

func createNote(t *testing.T, subjectID primitive.ObjectID, title, body string) notes.Note {
	t.Helper()
	n, err := notesRepo.CreateNote(context.Background(), notes.Note{Subject: subjectID, Title: title, Body: body})
	if err != nil {
		t.Fatalf("createNote(): %v", err)
	}
	return n
}

func createSchedule(t *testing.T, teacherID primitive.ObjectID, sched map[string][]string) schedule.TimeSchedule {
	t.Helper()
	ts, err := scheduleRepo.CreateTimeSchedule(context.Background(), schedule.TimeSchedule{Teacher: teacherID, Schedule: sched})
	if err != nil {
		t.Fatalf("createSchedule(): %v", err)
	}
	return ts
}
