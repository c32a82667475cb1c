package task

import "time"

type CreateTaskDTO struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateTaskDTO struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type AssignTaskDTO struct {
	AssigneeID int64 `json:"assignee_id" validate:"required"`
}

type TransitionDTO struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress review done"`
}
