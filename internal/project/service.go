package project

import (
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository interface {
	Create(project *Project) error
	GetByID(id int64) (*Project, error)
	List(limit, offset int) ([]*Project, error)
	Update(project *Project) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateProject(dto CreateProjectDTO, userID int64) (*Project, error) {
	now := time.Now()
	project := &Project{
		Code:       dto.Code,
		Name:       dto.Name,
		ClientName: dto.ClientName,
		Status:     StatusPlanning,
		Budget:     dto.Budget,
		StartDate:  dto.StartDate,
		TargetDate: dto.TargetDate,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(project); err != nil {
		s.logger.Error("failed to create project", "error", err, "code", dto.Code)
		return nil, internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "code", project.Code, "user_id", userID)
	return project, nil
}

// GetProject returns the project, with financial fields cleared unless
// the caller's capability set grants financial visibility.
func (s *Service) GetProject(id int64, set permissions.CapabilitySet) (*Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if !permissions.CanViewFinancialData(set) {
		project = project.RedactFinancials()
	}
	return project, nil
}

// ListProjects returns a page of projects redacted per the caller's
// capability set.
func (s *Service) ListProjects(set permissions.CapabilitySet, limit, offset int) ([]*Project, error) {
	projects, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, internal.NewInternalError("failed to list projects", err)
	}
	return permissions.RedactAll(projects, set), nil
}

func (s *Service) UpdateProject(id int64, dto UpdateProjectDTO, set permissions.CapabilitySet) (*Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}

	if dto.Name != nil {
		project.Name = *dto.Name
	}
	if dto.ClientName != nil {
		project.ClientName = *dto.ClientName
	}
	if dto.StartDate != nil {
		project.StartDate = dto.StartDate
	}
	if dto.TargetDate != nil {
		project.TargetDate = dto.TargetDate
	}

	// Budget edits additionally require financial visibility; editing a
	// number you cannot read back is never intended.
	if dto.Budget != nil || dto.ActualCost != nil {
		if !permissions.CanViewFinancialData(set) {
			return nil, internal.ErrPermissionDenied
		}
		if dto.Budget != nil {
			project.Budget = dto.Budget
		}
		if dto.ActualCost != nil {
			project.ActualCost = dto.ActualCost
		}
	}

	project.UpdatedAt = time.Now()
	if err := s.repo.Update(project); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, internal.NewInternalError("failed to update project", err)
	}

	if !permissions.CanViewFinancialData(set) {
		project = project.RedactFinancials()
	}
	return project, nil
}

func (s *Service) UpdateStatus(id int64, status string) (*Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if !project.CanTransitionTo(status) {
		return nil, internal.ErrInvalidTransition
	}

	project.Status = status
	project.UpdatedAt = time.Now()
	if err := s.repo.Update(project); err != nil {
		return nil, internal.NewInternalError("failed to update project status", err)
	}

	s.logger.Info("project status changed", "project_id", id, "status", status)
	return project, nil
}

func (s *Service) DeleteProject(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrProjectNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete project", "error", err, "project_id", id)
		return internal.NewInternalError("failed to delete project", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}
