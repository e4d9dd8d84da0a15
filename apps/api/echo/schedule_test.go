package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tshims/shule/core/schedule"
)

func Test_scheduleApi_create(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")

	body := []byte(`{"schedule":{"monday":["Algorithms","Networks"],"tuesday":["Algorithms"]}}`)

	tests := []httpTest{
		{
			name: "missing schedule", method: http.MethodPost, path: "/time_schedule/" + tch.ID.Hex(),
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "create", method: http.MethodPost, path: "/time_schedule/" + tch.ID.Hex(), body: body,
			wantCode: http.StatusCreated,
			wantData: marshallObj(t, httpErr{Message: "Time Schedule Added"}),
		},
		{
			// one timetable per teacher
			name: "duplicate teacher", method: http.MethodPost, path: "/time_schedule/" + tch.ID.Hex(), body: body,
			wantCode: http.StatusConflict,
			wantData: marshallObj(t, httpErr{Message: "Time Schedule already exists"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_scheduleApi_queryRetrieve(t *testing.T) {
	resetDB(t)

	t1 := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	t2 := createTeacher(t, "John Kasongo", "jkasongo", "s3cr3t", "EE", "teacher")

	s1 := createSchedule(t, t1.ID, map[string][]string{"monday": {"Algorithms"}})
	s2 := createSchedule(t, t2.ID, map[string][]string{"friday": {"Circuits"}})

	tests := []httpTest{
		{name: "query all", path: "/time_schedule", wantData: marshallList(t, s1, s2)},
		{name: "by teacher", path: "/time_schedule/" + t1.ID.Hex(), wantData: marshallObj(t, s1)},
		{
			name: "unknown teacher", path: "/time_schedule/ffffffffffffffffffffffff",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "No Time Schedule found"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_scheduleApi_updateDestroy(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	createSchedule(t, tch.ID, map[string][]string{"monday": {"Algorithms"}})

	tests := []httpTest{
		{
			name: "update", method: http.MethodPatch, path: "/time_schedule/" + tch.ID.Hex(),
			body:     []byte(`{"schedule":{"monday":["Networks"]}}`),
			wantData: marshallObj(t, httpErr{Message: "Time Schedule Updated"}),
		},
		{
			name: "unknown teacher", method: http.MethodPatch, path: "/time_schedule/ffffffffffffffffffffffff",
			body:     []byte(`{"schedule":{"monday":["Networks"]}}`),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "No Time Schedule found"}),
		},
	}
	runHTTPTests(t, tests)

	// the timetable is replaced wholesale
	req, rec := newRequest(http.MethodGet, "/time_schedule/"+tch.ID.Hex())
	app.ServeHTTP(rec, req)
	var updated schedule.TimeSchedule
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(updated.Schedule["monday"]) != 1 || updated.Schedule["monday"][0] != "Networks" {
		t.Errorf("Schedule = %v; want monday=[Networks]", updated.Schedule)
	}

	req, rec = newRequest(http.MethodDelete, "/time_schedule/"+tch.ID.Hex())
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marshallObj(t, httpErr{Message: "Time Schedule Deleted"})}, rec)

	req, rec = newRequest(http.MethodDelete, "/time_schedule/"+tch.ID.Hex())
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marshallObj(t, httpErr{Message: "No Time Schedule found"}),
	}, rec)
}
