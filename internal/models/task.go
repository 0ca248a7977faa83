package models

import (
	"fmt"
	"time"
)

// Status is the closed set of progress states a task can be in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// AllStatuses returns the enumeration in declaration order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// ParseStatus is the single place a status string crosses into the typed
// enumeration. Matching is exact and case-sensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of [todo in_progress done]", s)
}

type Task struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description *string
	Status      Status     `gorm:"type:varchar(20);not null;default:'todo'"`
	CreatedAt   time.Time  `gorm:"<-:create"`
	DueDate     *time.Time `gorm:"type:date"`
}

func (Task) TableName() string {
	return "tasks"
}
