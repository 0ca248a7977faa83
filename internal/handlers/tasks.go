package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/logger"
	"task-tracker/internal/models"
	"task-tracker/internal/repositories"
	"task-tracker/internal/validation"
)

// TaskHandler owns request parsing and status-code selection for the JSON
// API. Validation and query building are delegated; no storage logic here.
type TaskHandler struct {
	store repositories.TaskStore
}

func NewTaskHandler(store repositories.TaskStore) *TaskHandler {
	return &TaskHandler{store: store}
}

// taskResponse is the wire shape of a task: created_at as an RFC 3339
// datetime, due_date as a bare calendar date or null.
type taskResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
}

func newTaskResponse(t *models.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(validation.DateLayout)
		resp.DueDate = &due
	}
	return resp
}

// taskID parses the :id path parameter. A non-numeric id cannot name an
// existing row, so it reports false and the caller responds 404.
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	task, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	filter, err := repositories.ParseListFilter(
		c.Query("q"),
		c.Query("status"),
		c.Query("sort"),
		c.Query("order"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	responses := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, newTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	payload, verrs := validation.ParseCreate(body)
	if verrs != nil {
		logger.Warn("task creation rejected", zap.String("reason", verrs.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	task, err := h.store.Create(c.Request.Context(), payload)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	logger.Info("task created", zap.Uint("id", task.ID), zap.String("title", task.Title))
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	patch, verrs := validation.ParseUpdate(body)
	if verrs != nil {
		if verrs.Has(validation.CodeEmptyUpdate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no data provided"})
			return
		}
		logger.Warn("task update rejected", zap.Uint("id", id), zap.String("reason", verrs.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	task, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	logger.Info("task updated", zap.Uint("id", task.ID))
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		handleStoreError(c, err)
		return
	}

	logger.Info("task deleted", zap.Uint("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// handleStoreError maps repository failures onto status codes: not-found is
// a 404, everything else is an unexpected store failure surfaced as a 500.
func handleStoreError(c *gin.Context, err error) {
	if errors.Is(err, repositories.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	logger.Error("store operation failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
