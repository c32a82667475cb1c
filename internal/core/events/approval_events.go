package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDrawingApproved          = "shopdrawing.approved"
	EventTypeDrawingRejected          = "shopdrawing.rejected"
	EventTypeDrawingRevisionRequested = "shopdrawing.revision_requested"
	EventTypeSpecApproved             = "materialspec.approved"
	EventTypeSpecRejected             = "materialspec.rejected"
	EventTypeTaskAssigned             = "task.assigned"
)

// DrawingReviewedEvent is published when a shop drawing decision lands.
type DrawingReviewedEvent struct {
	BaseEvent
	DrawingID   int64  `json:"drawing_id"`
	ProjectID   int64  `json:"project_id"`
	SubmittedBy int64  `json:"submitted_by"`
	ReviewedBy  int64  `json:"reviewed_by"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
}

func NewDrawingReviewedEvent(eventType string, drawingID, projectID, submittedBy, reviewedBy int64, status, note string) *DrawingReviewedEvent {
	return &DrawingReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
		},
		DrawingID:   drawingID,
		ProjectID:   projectID,
		SubmittedBy: submittedBy,
		ReviewedBy:  reviewedBy,
		Status:      status,
		Note:        note,
	}
}

// SpecReviewedEvent is published when a material spec decision lands.
type SpecReviewedEvent struct {
	BaseEvent
	SpecID      int64  `json:"spec_id"`
	ProjectID   int64  `json:"project_id"`
	SubmittedBy int64  `json:"submitted_by"`
	ReviewedBy  int64  `json:"reviewed_by"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
}

func NewSpecReviewedEvent(eventType string, specID, projectID, submittedBy, reviewedBy int64, status, note string) *SpecReviewedEvent {
	return &SpecReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
		},
		SpecID:      specID,
		ProjectID:   projectID,
		SubmittedBy: submittedBy,
		ReviewedBy:  reviewedBy,
		Status:      status,
		Note:        note,
	}
}

// TaskAssignedEvent is published when a task gains or changes assignee.
type TaskAssignedEvent struct {
	BaseEvent
	TaskID     int64  `json:"task_id"`
	ProjectID  int64  `json:"project_id"`
	AssigneeID int64  `json:"assignee_id"`
	Title      string `json:"title"`
}

func NewTaskAssignedEvent(taskID, projectID, assigneeID int64, title string) *TaskAssignedEvent {
	return &TaskAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskAssigned,
			Timestamp: time.Now(),
		},
		TaskID:     taskID,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
		Title:      title,
	}
}
