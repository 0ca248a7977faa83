package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Task Tracker")
}

func TestTaskListPage(t *testing.T) {
	router := setupRouter(t)
	createTask(t, router, `{"title":"Render me"}`)

	w := doJSON(t, router, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Render me")
}

func TestTaskListPage_Empty(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No tasks yet")
}

func TestTaskDetailPage(t *testing.T) {
	router := setupRouter(t)
	created := createTask(t, router, `{"title":"Detail view","description":"with a body","due_date":"2025-04-01"}`)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Detail view")
	assert.Contains(t, body, "with a body")
	assert.Contains(t, body, "2025-04-01")
}

func TestTaskDetailPage_NotFoundIsPlainText(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/tasks/999", "/tasks/abc"} {
		w := doJSON(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
		assert.Equal(t, "Task not found", w.Body.String())
	}
}

func TestStatusForm_RedirectsToDetail(t *testing.T) {
	router := setupRouter(t)
	created := createTask(t, router, `{"title":"Form update"}`)

	w := doForm(t, router, fmt.Sprintf("/tasks/%d/status", created.ID), url.Values{"status": {"done"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/tasks/%d", created.ID), w.Header().Get("Location"))

	// the change is visible through the API
	resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", created.ID), "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "done", decodeTask(t, resp).Status)
}

func TestStatusForm_InvalidStatus(t *testing.T) {
	router := setupRouter(t)
	created := createTask(t, router, `{"title":"Form update"}`)

	w := doForm(t, router, fmt.Sprintf("/tasks/%d/status", created.ID), url.Values{"status": {"bogus"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusForm_MissingTask(t *testing.T) {
	router := setupRouter(t)

	w := doForm(t, router, "/tasks/999/status", url.Values{"status": {"done"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
