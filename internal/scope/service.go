package scope

import (
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository interface {
	Create(item *Item) error
	GetByID(id int64) (*Item, error)
	ListByProject(projectID int64, limit, offset int) ([]*Item, error)
	Update(item *Item) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateItem(projectID int64, dto CreateItemDTO) (*Item, error) {
	now := time.Now()
	item := &Item{
		ProjectID:   projectID,
		ItemNo:      dto.ItemNo,
		Description: dto.Description,
		Quantity:    dto.Quantity,
		Unit:        dto.Unit,
		UnitPrice:   dto.UnitPrice,
		Status:      StatusPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.TotalPrice = totalPrice(item.UnitPrice, item.Quantity)

	if err := s.repo.Create(item); err != nil {
		s.logger.Error("failed to create scope item", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to create scope item", err)
	}
	return item, nil
}

// ListItems returns a project's scope list with price fields redacted
// per the caller's capability set.
func (s *Service) ListItems(projectID int64, set permissions.CapabilitySet, limit, offset int) ([]*Item, error) {
	items, err := s.repo.ListByProject(projectID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list scope items", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to list scope items", err)
	}
	return permissions.RedactAll(items, set), nil
}

func (s *Service) GetItem(id int64, set permissions.CapabilitySet) (*Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrScopeItemNotFound
	}
	if !permissions.CanViewFinancialData(set) {
		item = item.RedactFinancials()
	}
	return item, nil
}

func (s *Service) UpdateItem(id int64, dto UpdateItemDTO, set permissions.CapabilitySet) (*Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrScopeItemNotFound
	}

	if dto.Description != nil {
		item.Description = *dto.Description
	}
	if dto.Quantity != nil {
		item.Quantity = *dto.Quantity
	}
	if dto.Unit != nil {
		item.Unit = *dto.Unit
	}
	if dto.Status != nil {
		if !ValidStatus(*dto.Status) {
			return nil, internal.ErrInvalidTransition
		}
		item.Status = *dto.Status
	}
	if dto.UnitPrice != nil {
		if !permissions.CanViewFinancialData(set) {
			return nil, internal.ErrPermissionDenied
		}
		item.UnitPrice = dto.UnitPrice
	}
	item.TotalPrice = totalPrice(item.UnitPrice, item.Quantity)

	item.UpdatedAt = time.Now()
	if err := s.repo.Update(item); err != nil {
		s.logger.Error("failed to update scope item", "error", err, "item_id", id)
		return nil, internal.NewInternalError("failed to update scope item", err)
	}

	if !permissions.CanViewFinancialData(set) {
		item = item.RedactFinancials()
	}
	return item, nil
}

func (s *Service) DeleteItem(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrScopeItemNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete scope item", err)
	}
	return nil
}

func totalPrice(unitPrice *int64, quantity float64) *int64 {
	if unitPrice == nil {
		return nil
	}
	total := int64(float64(*unitPrice) * quantity)
	return &total
}
