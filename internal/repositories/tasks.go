package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/models"
	"task-tracker/internal/validation"
)

// ErrTaskNotFound is the repository's not-found signal; handlers map it to
// a 404 without inspecting the store's own error values.
var ErrTaskNotFound = errors.New("task not found")

// TaskStore is what the handlers and the cache decorator program against.
type TaskStore interface {
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	List(ctx context.Context, filter ListFilter) ([]models.Task, error)
	Create(ctx context.Context, in *validation.CreateTask) (*models.Task, error)
	Update(ctx context.Context, id uint, in *validation.UpdateTask) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
}

// TaskRepository executes CRUD against the store. Each method derives a
// fresh session scoped to the calling request's context, so connections are
// returned to the pool on every exit path.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) session(ctx context.Context) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.session(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task %d: %w", id, err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ListFilter) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	query := filter.apply(r.session(ctx).Model(&models.Task{}))
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, in *validation.CreateTask) (*models.Task, error) {
	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
	}
	if err := r.session(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies the supplied fields inside one transaction, so a concurrent
// writer can never observe a partially applied patch. There is no optimistic
// locking: two racing updates resolve as last-write-wins.
func (r *TaskRepository) Update(ctx context.Context, id uint, in *validation.UpdateTask) (*models.Task, error) {
	var task models.Task
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if in.Title != nil {
			task.Title = *in.Title
		}
		if in.DescriptionSet {
			task.Description = in.Description
		}
		if in.Status != nil {
			task.Status = *in.Status
		}
		if in.DueDateSet {
			task.DueDate = in.DueDate
		}

		return tx.Save(&task).Error
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.session(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
