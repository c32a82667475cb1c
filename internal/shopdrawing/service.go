package shopdrawing

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/core/events"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository interface {
	Create(drawing *Drawing) error
	GetByID(id int64) (*Drawing, error)
	ListByProject(projectID int64, status string, limit, offset int) ([]*Drawing, error)
	ListPendingReview(limit, offset int) ([]*Drawing, error)
	Update(drawing *Drawing) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo    Repository
	checker permissions.Checker
	bus     EventPublisher
	logger  *slog.Logger
}

func NewService(repo Repository, checker permissions.Checker, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		checker: checker,
		bus:     bus,
		logger:  logger,
	}
}

func (s *Service) SubmitDrawing(projectID int64, dto SubmitDrawingDTO, userID int64) (*Drawing, error) {
	now := time.Now()
	drawing := &Drawing{
		ProjectID:   projectID,
		DrawingNo:   dto.DrawingNo,
		Title:       dto.Title,
		Discipline:  dto.Discipline,
		Status:      StatusPendingReview,
		SubmittedBy: userID,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(drawing); err != nil {
		s.logger.Error("failed to submit drawing", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to submit drawing", err)
	}

	s.logger.Info("shop drawing submitted",
		"drawing_id", drawing.ID,
		"drawing_no", drawing.DrawingNo,
		"project_id", projectID,
		"user_id", userID)
	return drawing, nil
}

func (s *Service) GetDrawing(id int64) (*Drawing, error) {
	drawing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrDrawingNotFound
	}
	return drawing, nil
}

func (s *Service) ListDrawings(projectID int64, status string, limit, offset int) ([]*Drawing, error) {
	drawings, err := s.repo.ListByProject(projectID, status, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list drawings", err)
	}
	return drawings, nil
}

// ListPendingReview returns the review queue, oldest submission first.
func (s *Service) ListPendingReview(set permissions.CapabilitySet, limit, offset int) ([]*Drawing, error) {
	if !s.checker.CanApproveDrawings(set) {
		return nil, internal.ErrPermissionDenied
	}
	drawings, err := s.repo.ListPendingReview(limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list review queue", err)
	}
	return drawings, nil
}

func (s *Service) ApproveDrawing(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Drawing, error) {
	return s.review(ctx, id, reviewerID, note, set, events.EventTypeDrawingApproved, (*Drawing).Approve)
}

func (s *Service) RejectDrawing(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Drawing, error) {
	return s.review(ctx, id, reviewerID, note, set, events.EventTypeDrawingRejected, (*Drawing).Reject)
}

func (s *Service) RequestRevision(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Drawing, error) {
	return s.review(ctx, id, reviewerID, note, set, events.EventTypeDrawingRevisionRequested, (*Drawing).RequestRevision)
}

func (s *Service) review(ctx context.Context, id, reviewerID int64, note string, set permissions.CapabilitySet, eventType string, decide func(*Drawing, int64, string)) (*Drawing, error) {
	if !s.checker.CanApproveDrawings(set) {
		s.logger.Warn("drawing review denied: missing capability", "drawing_id", id, "reviewer_id", reviewerID)
		return nil, internal.ErrPermissionDenied
	}

	drawing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrDrawingNotFound
	}
	if !drawing.CanBeReviewed() {
		return nil, internal.ErrDrawingNotReviewable
	}

	decide(drawing, reviewerID, note)
	if err := s.repo.Update(drawing); err != nil {
		s.logger.Error("failed to store drawing decision", "error", err, "drawing_id", id)
		return nil, internal.NewInternalError("failed to store drawing decision", err)
	}

	s.bus.Publish(ctx, events.NewDrawingReviewedEvent(
		eventType, drawing.ID, drawing.ProjectID, drawing.SubmittedBy, reviewerID, drawing.Status, note))

	s.logger.Info("shop drawing reviewed",
		"drawing_id", drawing.ID,
		"status", drawing.Status,
		"reviewer_id", reviewerID)
	return drawing, nil
}

// ResubmitDrawing is the submitter answering a revision request. Only
// the original submitter may resubmit.
func (s *Service) ResubmitDrawing(id int64, userID int64) (*Drawing, error) {
	drawing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrDrawingNotFound
	}
	if drawing.SubmittedBy != userID {
		return nil, internal.ErrUnauthorizedAccess
	}
	if !drawing.CanBeResubmitted() {
		return nil, internal.ErrDrawingNotReviewable
	}

	drawing.Resubmit()
	if err := s.repo.Update(drawing); err != nil {
		return nil, internal.NewInternalError("failed to resubmit drawing", err)
	}

	s.logger.Info("shop drawing resubmitted", "drawing_id", id, "revision", drawing.Revision)
	return drawing, nil
}
