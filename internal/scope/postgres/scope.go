package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/scope"
)

// ScopeRepository implements scope.Repository using GORM.
type ScopeRepository struct {
	db *gorm.DB
}

func NewScopeRepository(db *gorm.DB) scope.Repository {
	return &ScopeRepository{db: db}
}

func (r *ScopeRepository) Create(item *scope.Item) error {
	return r.db.Create(item).Error
}

func (r *ScopeRepository) GetByID(id int64) (*scope.Item, error) {
	var item scope.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrScopeItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ScopeRepository) ListByProject(projectID int64, limit, offset int) ([]*scope.Item, error) {
	var items []*scope.Item
	err := r.db.Where("project_id = ?", projectID).
		Order("item_no ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *ScopeRepository) Update(item *scope.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.Save(item).Error
}

func (r *ScopeRepository) Delete(id int64) error {
	return r.db.Delete(&scope.Item{}, id).Error
}
