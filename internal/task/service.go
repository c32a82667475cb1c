package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/core/events"
)

type Repository interface {
	Create(task *Task) error
	GetByID(id int64) (*Task, error)
	ListByProject(projectID int64, limit, offset int) ([]*Task, error)
	ListByAssignee(assigneeID int64, limit, offset int) ([]*Task, error)
	Update(task *Task) error
	Delete(id int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

func (s *Service) CreateTask(ctx context.Context, projectID int64, dto CreateTaskDTO, userID int64) (*Task, error) {
	priority := dto.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	task := &Task{
		ProjectID:   projectID,
		Title:       dto.Title,
		Description: dto.Description,
		AssigneeID:  dto.AssigneeID,
		Status:      StatusTodo,
		Priority:    priority,
		DueDate:     dto.DueDate,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		s.logger.Error("failed to create task", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to create task", err)
	}

	if task.AssigneeID != nil {
		s.bus.Publish(ctx, events.NewTaskAssignedEvent(task.ID, task.ProjectID, *task.AssigneeID, task.Title))
	}

	s.logger.Info("task created", "task_id", task.ID, "project_id", projectID, "user_id", userID)
	return task, nil
}

func (s *Service) GetTask(id int64) (*Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}
	return task, nil
}

func (s *Service) ListProjectTasks(projectID int64, limit, offset int) ([]*Task, error) {
	tasks, err := s.repo.ListByProject(projectID, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *Service) ListMyTasks(assigneeID int64, limit, offset int) ([]*Task, error) {
	tasks, err := s.repo.ListByAssignee(assigneeID, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *Service) UpdateTask(id int64, dto UpdateTaskDTO) (*Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}

	if dto.Title != nil {
		task.Title = *dto.Title
	}
	if dto.Description != nil {
		task.Description = *dto.Description
	}
	if dto.Priority != nil {
		task.Priority = *dto.Priority
	}
	if dto.DueDate != nil {
		task.DueDate = dto.DueDate
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.Update(task); err != nil {
		return nil, internal.NewInternalError("failed to update task", err)
	}
	return task, nil
}

// Assign sets the assignee and notifies them through the event bus.
func (s *Service) Assign(ctx context.Context, id int64, assigneeID int64) (*Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}

	task.AssigneeID = &assigneeID
	task.UpdatedAt = time.Now()
	if err := s.repo.Update(task); err != nil {
		return nil, internal.NewInternalError("failed to assign task", err)
	}

	s.bus.Publish(ctx, events.NewTaskAssignedEvent(task.ID, task.ProjectID, assigneeID, task.Title))
	return task, nil
}

// Transition moves the task along the status board. Assignees may move
// their own tasks; anything else is the caller's responsibility to gate.
func (s *Service) Transition(id int64, status string) (*Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTaskNotFound
	}
	if !task.CanTransitionTo(status) {
		return nil, internal.ErrInvalidTransition
	}

	task.Status = status
	task.UpdatedAt = time.Now()
	if err := s.repo.Update(task); err != nil {
		return nil, internal.NewInternalError("failed to transition task", err)
	}

	s.logger.Info("task transitioned", "task_id", id, "status", status)
	return task, nil
}

func (s *Service) DeleteTask(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrTaskNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete task", err)
	}
	return nil
}
