package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tshims/shule/core/teacher"
)

func Test_teacherApi_create(t *testing.T) {
	resetDB(t)

	body := []byte(`{"name":"Jane Mwamba","username":"jmwamba","password":"s3cr3t","department":"CS"}`)

	req, rec := newRequest(http.MethodPost, "/teacher", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %v", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("created teacher has no id")
	}
	if created.Role != "" {
		t.Errorf("Role = %q; registration must not grant a role", created.Role)
	}

	// the stored hash must verify the plain password and never leak
	stored, err := teacherRepo.GetTeacherByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetTeacherByID(): %v", err)
	}
	if err := stored.CheckPassword("s3cr3t"); err != nil {
		t.Errorf("CheckPassword(): %v", err)
	}
	if _, ok := jsonFields(t, rec.Body.Bytes())["password"]; ok {
		t.Error("password leaked in response")
	}

	// an identical second submission must conflict
	req, rec = newRequest(http.MethodPost, "/teacher", body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusConflict,
		wantData: marshallObj(t, httpErr{Message: "Teacher already exists"}),
	}, rec)
}

func jsonFields(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	fields := make(map[string]interface{})
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("jsonFields(): %v", err)
	}
	return fields
}

func Test_teacherApi_validation(t *testing.T) {
	resetDB(t)

	tests := []httpTest{
		{
			name: "all fields required", method: http.MethodPost, path: "/teacher", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "All Fields are required",
				Fields: map[string]string{
					"name":       "this field is required",
					"username":   "this field is required",
					"password":   "this field is required",
					"department": "this field is required",
				},
			}),
		},
		{
			name: "username too short", method: http.MethodPost, path: "/teacher",
			body:     []byte(`{"name":"J","username":"jm","password":"x","department":"CS"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "bad path id", method: http.MethodGet, path: "/teacher/nope",
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "All Fields are required",
				Fields:  map[string]string{"teacherId": "must be a valid object id"},
			}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_teacherApi_queryRetrieve(t *testing.T) {
	resetDB(t)

	t1 := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	t2 := createTeacher(t, "John Kasongo", "jkasongo", "s3cr3t", "EE", "")

	tests := []httpTest{
		{name: "query all", path: "/teacher", wantData: marshallList(t, t1, t2)},
		{name: "retrieve", path: "/teacher/" + t1.ID.Hex(), wantData: marshallObj(t, t1)},
		{
			name: "retrieve unknown", path: "/teacher/ffffffffffffffffffffffff",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "User not found"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_teacherApi_update(t *testing.T) {
	resetDB(t)

	pending := createTeacher(t, "John Kasongo", "jkasongo", "s3cr3t", "EE", "")
	createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")

	// approval is a partial update that sets the role
	req, rec := newRequest(http.MethodPatch, "/teacher/"+pending.ID.Hex(), []byte(`{"role":"teacher"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v: %v", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if updated.Role != "teacher" {
		t.Errorf("Role = %q; want %q", updated.Role, "teacher")
	}
	if updated.Username != pending.Username || updated.Name != pending.Name {
		t.Error("untouched fields must keep their stored values")
	}

	tests := []httpTest{
		{
			name: "taken username conflicts", method: http.MethodPatch, path: "/teacher/" + pending.ID.Hex(),
			body:     []byte(`{"username":"jmwamba"}`),
			wantCode: http.StatusConflict,
			wantData: marshallObj(t, httpErr{Message: "Teacher already exists"}),
		},
		{
			name: "own username is not a conflict", method: http.MethodPatch, path: "/teacher/" + pending.ID.Hex(),
			body: []byte(`{"username":"jkasongo"}`),
		},
		{
			name: "unknown teacher", method: http.MethodPatch, path: "/teacher/ffffffffffffffffffffffff",
			body:     []byte(`{"role":"teacher"}`),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "User not found"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_teacherApi_destroy(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")

	tests := []httpTest{
		{name: "delete", method: http.MethodDelete, path: "/teacher/" + tch.ID.Hex(), wantCode: http.StatusNoContent},
		{
			name: "already gone", method: http.MethodDelete, path: "/teacher/" + tch.ID.Hex(),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "User not found"}),
		},
	}
	runHTTPTests(t, tests)
}
