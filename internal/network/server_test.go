package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/labdb/internal/engine"
	"github.com/leengari/labdb/internal/testutil"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	tables, _ := testutil.LoadSampleTables(t)
	db := engine.New()
	for name, table := range tables {
		db.RegisterTable(name, table)
	}
	return NewServer(db)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t)
	rec := do(t, s, http.MethodGet, "/hc", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, rec.Body.String(), "ok")
	assert.Assert(t, rec.Header().Get("X-Request-Id") != "")
}

func TestListTables(t *testing.T) {
	s := setupTestServer(t)
	rec := do(t, s, http.MethodGet, "/tables", "")
	assert.Equal(t, rec.Code, http.StatusOK)

	var names []string
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.DeepEqual(t, names, []string{"departments", "employees", "projects"})
}

func TestInsertAndSelect(t *testing.T) {
	s := setupTestServer(t)

	rec := do(t, s, http.MethodPost, "/tables/employees/records", `{"raw":"3 103 Justin 35 70000"}`)
	assert.Equal(t, rec.Code, http.StatusCreated)

	rec = do(t, s, http.MethodPost, "/tables/employees/select", `{"args":["2","3"]}`)
	assert.Equal(t, rec.Code, http.StatusOK)

	var resp struct {
		Count   int                      `json:"count"`
		Records []map[string]interface{} `json:"records"`
	}
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, resp.Count, 2)
	assert.Equal(t, resp.Records[1]["name"], "Justin")
	assert.Equal(t, resp.Records[1]["salary"], 70000.0)
}

func TestInsertErrors(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"duplicate", "/tables/departments/records", `{"raw":"101 HR"}`, http.StatusConflict},
		{"unknown table", "/tables/unknown/records", `{"raw":"1 2"}`, http.StatusNotFound},
		{"malformed record", "/tables/departments/records", `{"raw":"101"}`, http.StatusBadRequest},
		{"missing raw", "/tables/departments/records", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, rec.Code, tt.status)
		})
	}
}

func TestJoinEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := do(t, s, http.MethodPost, "/join",
		`{"left":"employees","right":"departments","left_attr":"department_id","right_attr":"d_id"}`)
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, strings.Contains(rec.Body.String(), `"count":2`))

	rec = do(t, s, http.MethodPost, "/join",
		`{"left":"employees","right":"unknown","left_attr":"department_id","right_attr":"d_id"}`)
	assert.Equal(t, rec.Code, http.StatusNotFound)

	rec = do(t, s, http.MethodPost, "/multijoin",
		`{"tables":["employees","departments","projects"],"first":["department_id","d_id"],"second":["e_id","manager_id"]}`)
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, strings.Contains(rec.Body.String(), `"project_name":"Alpha"`))

	rec = do(t, s, http.MethodPost, "/multijoin",
		`{"tables":["employees","departments","projects"],"first":["department_id"],"second":["e_id","manager_id"]}`)
	assert.Equal(t, rec.Code, http.StatusBadRequest)

	rec = do(t, s, http.MethodPost, "/multijoin", `{"tables":["employees","departments"]}`)
	assert.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestAggregateEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := do(t, s, http.MethodPost, "/aggregate", `{"table":"employees","method":"avg","column":"salary"}`)
	assert.Equal(t, rec.Code, http.StatusOK)

	var resp AggregateResponse
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, resp.Value, 55000.0)

	rec = do(t, s, http.MethodPost, "/aggregate", `{"table":"employees","method":"sum","column":"salary"}`)
	assert.Equal(t, rec.Code, http.StatusBadRequest)

	rec = do(t, s, http.MethodPost, "/aggregate", `{"table":"employees","method":"avg","column":"bonus"}`)
	assert.Equal(t, rec.Code, http.StatusBadRequest)
}
