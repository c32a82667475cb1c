package task

import "time"

// Task statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var statusTransitions = map[string][]string{
	StatusTodo:       {StatusInProgress},
	StatusInProgress: {StatusReview, StatusTodo},
	StatusReview:     {StatusDone, StatusInProgress},
	StatusDone:       {},
}

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	ProjectID   int64      `json:"project_id" gorm:"column:project_id;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	AssigneeID  *int64     `json:"assignee_id,omitempty" gorm:"column:assignee_id"`
	Status      string     `json:"status" gorm:"default:todo"`
	Priority    string     `json:"priority" gorm:"default:medium"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"column:due_date;type:date"`
	CreatedBy   int64      `json:"created_by" gorm:"column:created_by"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) CanTransitionTo(status string) bool {
	for _, next := range statusTransitions[t.Status] {
		if next == status {
			return true
		}
	}
	return false
}
