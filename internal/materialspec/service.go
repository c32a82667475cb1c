package materialspec

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/core/events"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository interface {
	Create(spec *Spec) error
	GetByID(id int64) (*Spec, error)
	ListByProject(projectID int64, status string, limit, offset int) ([]*Spec, error)
	ListPending(limit, offset int) ([]*Spec, error)
	Update(spec *Spec) error
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

func (s *Service) SubmitSpec(projectID int64, dto SubmitSpecDTO, userID int64) (*Spec, error) {
	now := time.Now()
	spec := &Spec{
		ProjectID:    projectID,
		SpecNo:       dto.SpecNo,
		Name:         dto.Name,
		Manufacturer: dto.Manufacturer,
		Model:        dto.Model,
		UnitCost:     dto.UnitCost,
		Status:       StatusPending,
		SubmittedBy:  userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(spec); err != nil {
		s.logger.Error("failed to submit material spec", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to submit material spec", err)
	}

	s.logger.Info("material spec submitted",
		"spec_id", spec.ID,
		"spec_no", spec.SpecNo,
		"project_id", projectID,
		"user_id", userID)
	return spec, nil
}

// GetSpec returns the spec with the unit cost cleared unless the caller
// has financial visibility.
func (s *Service) GetSpec(id int64, set permissions.CapabilitySet) (*Spec, error) {
	spec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMaterialSpecNotFound
	}
	if !s.checker.CanViewFinancialData(set) {
		spec = spec.RedactFinancials()
	}
	return spec, nil
}

func (s *Service) ListSpecs(projectID int64, status string, set permissions.CapabilitySet, limit, offset int) ([]*Spec, error) {
	specs, err := s.repo.ListByProject(projectID, status, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list material specs", err)
	}
	return permissions.RedactAll(specs, set), nil
}

// ListPending returns the approval queue, oldest first.
func (s *Service) ListPending(set permissions.CapabilitySet, limit, offset int) ([]*Spec, error) {
	if !s.checker.CanApproveSpecs(set) {
		return nil, internal.ErrPermissionDenied
	}
	specs, err := s.repo.ListPending(limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list pending specs", err)
	}
	return permissions.RedactAll(specs, set), nil
}

func (s *Service) ApproveSpec(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Spec, error) {
	return s.review(ctx, id, reviewerID, note, set, events.EventTypeSpecApproved, (*Spec).Approve)
}

func (s *Service) RejectSpec(ctx context.Context, id int64, reviewerID int64, note string, set permissions.CapabilitySet) (*Spec, error) {
	return s.review(ctx, id, reviewerID, note, set, events.EventTypeSpecRejected, (*Spec).Reject)
}

func (s *Service) review(ctx context.Context, id, reviewerID int64, note string, set permissions.CapabilitySet, eventType string, decide func(*Spec, int64, string)) (*Spec, error) {
	if !s.checker.CanApproveSpecs(set) {
		s.logger.Warn("spec review denied: missing capability", "spec_id", id, "reviewer_id", reviewerID)
		return nil, internal.ErrPermissionDenied
	}

	spec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMaterialSpecNotFound
	}
	if !spec.CanBeReviewed() {
		return nil, internal.ErrSpecNotReviewable
	}

	decide(spec, reviewerID, note)
	if err := s.repo.Update(spec); err != nil {
		s.logger.Error("failed to store spec decision", "error", err, "spec_id", id)
		return nil, internal.NewInternalError("failed to store spec decision", err)
	}

	s.bus.Publish(ctx, events.NewSpecReviewedEvent(
		eventType, spec.ID, spec.ProjectID, spec.SubmittedBy, reviewerID, spec.Status, note))

	s.logger.Info("material spec reviewed",
		"spec_id", spec.ID,
		"status", spec.Status,
		"reviewer_id", reviewerID)
	return spec, nil
}
