package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/workbench/core"
	"github.com/huangsam/workbench/internal/iostore"
	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedDogs() []schema.Dog {
	return []schema.Dog{
		{ID: 1, Name: "Toby", Breed: "Beagle", Age: 3, Weight: 12.5, IntakeDate: "2024-01-10"},
		{ID: 3, Name: "Rex", Breed: "Boxer", Age: 5, Weight: 30, IntakeDate: "2023-11-02"},
	}
}

func newDogsTestHandler(store *iostore.MemoryStore) http.Handler {
	return NewDogsHandler(core.NewDogService(store))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDogsList(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(seedDogs()))

	tests := []struct {
		target   string
		expected []int64
	}{
		{"/", []int64{1, 3}},
		{"/?name=to", []int64{1}},
		{"/?name=TO", []int64{1}},
		{"/?sort=age&order=DESC", []int64{3, 1}},
		{"/?sort=name&order=asc", []int64{3, 1}},
		{"/?sort=name&order=sideways", []int64{3, 1}},
		{"/?sort=unknown&order=desc", []int64{1, 3}},
		{"/?name=nobody", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			dogs := decode[[]schema.Dog](t, rec)
			ids := make([]int64, 0, len(dogs))
			for _, d := range dogs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestDogsEmptyListIsArray(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(nil))
	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDogsGet(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(seedDogs()))

	rec := do(t, h, http.MethodGet, "/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"name":"Rex","breed":"Boxer","age":5,"weight":30,"intakeDate":"2023-11-02"}`, rec.Body.String())

	for _, target := range []string{"/3.0", "/3e0"} {
		rec = do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, int64(3), decode[schema.Dog](t, rec).ID, target)
	}

	for _, target := range []string{"/99", "/abc", "/1.5"} {
		rec = do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, decode[errorBody](t, rec).Error, "not found", target)
	}
}

func TestDogsCreate(t *testing.T) {
	store := iostore.NewMemoryStore(seedDogs())
	h := newDogsTestHandler(store)

	rec := do(t, h, http.MethodPost, "/", `{"name":"Luna","breed":"Pug","age":"2","weight":8,"intakeDate":"2024-05-01","owner":"ignored"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[schema.Dog](t, rec)
	assert.Equal(t, schema.Dog{ID: 4, Name: "Luna", Breed: "Pug", Age: 2, Weight: 8, IntakeDate: "2024-05-01"}, created)

	rec = do(t, h, http.MethodGet, "/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[schema.Dog](t, rec))
}

func TestDogsCreateBadRequests(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(nil))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"name":"Luna"}`, "missing required fields"},
		{"empty body", "", "missing required fields"},
		{"malformed json", `{"name":`, "invalid body"},
		{"array body", `[1,2]`, "expected a JSON object"},
		{"non numeric age", `{"name":"Luna","breed":"Pug","age":"old","weight":8,"intakeDate":"2024-05-01"}`, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[errorBody](t, rec).Error, tt.want)
		})
	}
}

func TestDogsUpdate(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(seedDogs()))

	rec := do(t, h, http.MethodPatch, "/1", `{"breed":"Basset","id":77}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[schema.Dog](t, rec)
	expected := seedDogs()[0]
	expected.Breed = "Basset"
	assert.Equal(t, expected, updated)

	rec = do(t, h, http.MethodPatch, "/1", `"just a string"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPatch, "/42", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPatch, "/x", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDogsDelete(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(seedDogs()))

	rec := do(t, h, http.MethodDelete, "/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":{"id":3,"name":"Rex","breed":"Boxer","age":5,"weight":30,"intakeDate":"2023-11-02"}}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDogsMethodNotAllowed(t *testing.T) {
	h := newDogsTestHandler(iostore.NewMemoryStore(nil))
	rec := do(t, h, http.MethodPut, "/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDogsStorageFailure(t *testing.T) {
	store := &iostore.MockDogStore{}
	store.On("Load", mock.Anything).Return(nil, errors.New("permission denied"))
	h := NewDogsHandler(core.NewDogService(store))

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "failed to read the dataset", body.Error)
	assert.NotContains(t, body.Error, "permission denied")
}

func TestDogsWithJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := iostore.NewJSONFileStore(path)
	h := NewDogsHandler(core.NewDogService(store))

	rec := do(t, h, http.MethodPost, "/", `{"name":"Luna","breed":"Pug","age":2,"weight":8,"intakeDate":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	dogs, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	assert.Equal(t, int64(1), dogs[0].ID)
}
