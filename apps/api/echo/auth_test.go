package echoapi_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tshims/shule/core/student"
	"github.com/tshims/shule/core/teacher"
	emailsvc "github.com/tshims/shule/services/email"
)

func Test_authApi_teacherLogin(t *testing.T) {
	resetDB(t)

	approved := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	createTeacher(t, "John Kasongo", "jkasongo", "s3cr3t", "CS", "")

	tests := []httpTest{
		{
			name: "empty credentials", method: http.MethodPost, path: "/auth/login/teacher", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "All Fields are required",
				Fields:  map[string]string{"username": "this field is required", "password": "this field is required"},
			}),
		},
		{
			name: "unknown username", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"ghost","password":"s3cr3t"}`),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "User not found"}),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"jmwamba","password":"nope"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, httpErr{Message: "Incorrect Password"}),
		},
		{
			name: "unapproved teacher", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"jkasongo","password":"s3cr3t"}`),
			wantCode: http.StatusTeapot,
			wantData: marshallObj(t, httpErr{Message: "User not Approved"}),
		},
		{
			// the approval gate fires before the password check
			name: "unapproved teacher, wrong password", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"jkasongo","password":"nope"}`),
			wantCode: http.StatusTeapot,
			wantData: marshallObj(t, httpErr{Message: "User not Approved"}),
		},
		{
			name: "approved teacher", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"jmwamba","password":"s3cr3t"}`),
			wantData: marshallObj(t, teacher.Profile{ID: approved.ID, Name: approved.Name, Role: approved.Role, Department: approved.Department}),
		},
		{
			name: "username is case-insensitive", method: http.MethodPost, path: "/auth/login/teacher",
			body:     []byte(`{"username":"JMwamba","password":"s3cr3t"}`),
			wantData: marshallObj(t, teacher.Profile{ID: approved.ID, Name: approved.Name, Role: approved.Role, Department: approved.Department}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_authApi_studentLogin(t *testing.T) {
	resetDB(t)

	std := createStudent(t, "Alain Kalonji", "akalonji", "s3cr3t")

	tests := []httpTest{
		{
			name: "unknown username", method: http.MethodPost, path: "/auth/login/student",
			body:     []byte(`{"username":"ghost","password":"s3cr3t"}`),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "User not found"}),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/auth/login/student",
			body:     []byte(`{"username":"akalonji","password":"nope"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, httpErr{Message: "Incorrect Password"}),
		},
		{
			// students have no approval gate
			name: "valid credentials", method: http.MethodPost, path: "/auth/login/student",
			body:     []byte(`{"username":"akalonji","password":"s3cr3t"}`),
			wantData: marshallObj(t, student.Profile{ID: std.ID, Name: std.Name, Role: student.Role}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_authApi_resetPassword(t *testing.T) {
	resetDB(t)

	tests := []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/auth/reset/password", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "All Fields are required",
				Fields: map[string]string{
					"username": "this field is required",
					"email":    "this field is required",
					"token":    "this field is required",
				},
			}),
		},
		{
			name: "invalid email", method: http.MethodPost, path: "/auth/reset/password",
			body:     []byte(`{"username":"jmwamba","email":"not-an-email","token":"tok123"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "email sent", method: http.MethodPost, path: "/auth/reset/password",
			body:     []byte(`{"username":"jmwamba","email":"jmwamba@test.cd","token":"tok123"}`),
			wantData: marshallObj(t, httpErr{Message: "Email sent successfully."}),
		},
	}
	runHTTPTests(t, tests)

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("SentMessages = %d; want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.To[0].Address != "jmwamba@test.cd" {
		t.Errorf("To = %v; want jmwamba@test.cd", msg.To[0].Address)
	}
	if !strings.Contains(msg.HTMLContent, "http://localhost:3000/user/reset-password/tok123") {
		t.Errorf("reset link missing from body: %v", msg.HTMLContent)
	}
}
