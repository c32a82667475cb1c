package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/task"
)

// TaskRepository implements task.Repository using GORM.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListByProject(projectID int64, limit, offset int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("due_date ASC NULLS LAST, priority DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByAssignee(assigneeID int64, limit, offset int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.Where("assignee_id = ?", assigneeID).
		Order("due_date ASC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *task.Task) error {
	t.UpdatedAt = time.Now()
	return r.db.Save(t).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&task.Task{}, id).Error
}
