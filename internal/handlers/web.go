package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/logger"
	"task-tracker/internal/models"
	"task-tracker/internal/repositories"
	"task-tracker/internal/validation"
)

// WebHandler serves the server-rendered views. It shares the TaskStore with
// the JSON API; only the response shape differs.
type WebHandler struct {
	store repositories.TaskStore
}

func NewWebHandler(store repositories.TaskStore) *WebHandler {
	return &WebHandler{store: store}
}

// taskView is the template-facing shape of a task, with dates preformatted.
type taskView struct {
	ID          uint
	Title       string
	Description string
	Status      string
	CreatedAt   string
	DueDate     string
}

func newTaskView(t *models.Task) taskView {
	view := taskView{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format("2006-01-02 15:04"),
	}
	if t.Description != nil {
		view.Description = *t.Description
	}
	if t.DueDate != nil {
		view.DueDate = t.DueDate.Format(validation.DateLayout)
	}
	return view
}

func (h *WebHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *WebHandler) ListTasks(c *gin.Context) {
	tasks, err := h.store.List(c.Request.Context(), repositories.ListFilter{
		Sort:  repositories.SortCreatedAt,
		Order: repositories.OrderAsc,
	})
	if err != nil {
		logger.Error("failed to render task list", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	views := make([]taskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, newTaskView(&tasks[i]))
	}
	c.HTML(http.StatusOK, "tasks_list.html", gin.H{"Tasks": views})
}

func (h *WebHandler) ShowTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.String(http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		logger.Error("failed to render task detail", zap.Uint("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.HTML(http.StatusOK, "task_detail.html", gin.H{
		"Task":     newTaskView(task),
		"Statuses": models.AllStatuses(),
	})
}

// UpdateStatus handles the status form on the detail page and redirects
// back to it on success.
func (h *WebHandler) UpdateStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.String(http.StatusNotFound, "Task not found")
		return
	}

	status, err := models.ParseStatus(c.PostForm("status"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	patch := &validation.UpdateTask{Status: &status}
	if _, err := h.store.Update(c.Request.Context(), id, patch); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		logger.Error("failed to update task status", zap.Uint("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/tasks/"+c.Param("id"))
}
