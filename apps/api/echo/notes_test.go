package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tshims/shule/core/notes"
)

func Test_notesApi_create(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	algo := createSubject(t, "Algorithms", tch.ID)

	body := []byte(`{"title":"Big O","body":"Growth rates."}`)

	tests := []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/notes/subject/" + algo.ID.Hex(),
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{
				Message: "All Fields are required",
				Fields:  map[string]string{"title": "this field is required", "body": "this field is required"},
			}),
		},
		{
			name: "bad subject id", method: http.MethodPost, path: "/notes/subject/nope", body: body,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "create", method: http.MethodPost, path: "/notes/subject/" + algo.ID.Hex(), body: body,
			wantCode: http.StatusCreated,
			wantData: marshallObj(t, httpErr{Message: "Note Added Successfully"}),
		},
		{
			// an identical note under the same subject conflicts
			name: "duplicate", method: http.MethodPost, path: "/notes/subject/" + algo.ID.Hex(), body: body,
			wantCode: http.StatusConflict,
			wantData: marshallObj(t, httpErr{Message: "Note already exists"}),
		},
	}
	runHTTPTests(t, tests)

	// the created note carries its timestamps
	req, rec := newRequest(http.MethodGet, "/notes/subject/"+algo.ID.Hex())
	app.ServeHTTP(rec, req)
	var nts []notes.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &nts); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(nts) != 1 {
		t.Fatalf("notes = %d; want 1", len(nts))
	}
	if nts[0].CreatedAt.IsZero() || !nts[0].UpdatedAt.Equal(nts[0].CreatedAt) {
		t.Errorf("timestamps not set on create: %+v", nts[0])
	}
}

func Test_notesApi_queryRetrieve(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	algo := createSubject(t, "Algorithms", tch.ID)
	nets := createSubject(t, "Networks", tch.ID)

	n1 := createNote(t, algo.ID, "Big O", "Growth rates.")
	n2 := createNote(t, algo.ID, "Sorting", "Quicksort vs mergesort.")
	createNote(t, nets.ID, "OSI", "Seven layers.")

	tests := []httpTest{
		{name: "by subject", path: "/notes/subject/" + algo.ID.Hex(), wantData: marshallList(t, n1, n2)},
		{name: "empty subject", path: "/notes/subject/ffffffffffffffffffffffff", wantData: []byte(`[]`)},
		{name: "retrieve", path: "/notes/" + n1.ID.Hex(), wantData: marshallObj(t, n1)},
		{
			name: "unknown note", path: "/notes/ffffffffffffffffffffffff",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Message: "Note Not Found"}),
		},
	}
	runHTTPTests(t, tests)
}

func Test_notesApi_updateDestroy(t *testing.T) {
	resetDB(t)

	tch := createTeacher(t, "Jane Mwamba", "jmwamba", "s3cr3t", "CS", "teacher")
	algo := createSubject(t, "Algorithms", tch.ID)
	note := createNote(t, algo.ID, "Big O", "Growth rates.")

	tests := []httpTest{
		{
			name: "all fields required", method: http.MethodPatch, path: "/notes/" + note.ID.Hex(),
			body:     []byte(`{"title":"Big O"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update", method: http.MethodPatch, path: "/notes/" + note.ID.Hex(),
			body:     []byte(`{"title":"Big O notation","body":"Asymptotic growth rates."}`),
			wantData: marshallObj(t, httpErr{Message: "Notes Updated"}),
		},
	}
	runHTTPTests(t, tests)

	// the subject reference never changes on update
	req, rec := newRequest(http.MethodGet, "/notes/"+note.ID.Hex())
	app.ServeHTTP(rec, req)
	var updated notes.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if updated.Title != "Big O notation" || updated.Body != "Asymptotic growth rates." {
		t.Errorf("update not persisted: %+v", updated)
	}
	if updated.Subject != algo.ID {
		t.Errorf("Subject = %v; want %v", updated.Subject, algo.ID)
	}

	req, rec = newRequest(http.MethodDelete, "/notes/"+note.ID.Hex())
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marshallObj(t, httpErr{Message: "Notes Deleted"})}, rec)

	req, rec = newRequest(http.MethodDelete, "/notes/"+note.ID.Hex())
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marshallObj(t, httpErr{Message: "Note Not Found"}),
	}, rec)
}
