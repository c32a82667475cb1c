package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/materialspec"
)

// SpecRepository implements materialspec.Repository using GORM.
type SpecRepository struct {
	db *gorm.DB
}

func NewSpecRepository(db *gorm.DB) materialspec.Repository {
	return &SpecRepository{db: db}
}

func (r *SpecRepository) Create(s *materialspec.Spec) error {
	return r.db.Create(s).Error
}

func (r *SpecRepository) GetByID(id int64) (*materialspec.Spec, error) {
	var s materialspec.Spec
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrMaterialSpecNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SpecRepository) ListByProject(projectID int64, status string, limit, offset int) ([]*materialspec.Spec, error) {
	var specs []*materialspec.Spec
	query := r.db.Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&specs).Error
	return specs, err
}

func (r *SpecRepository) ListPending(limit, offset int) ([]*materialspec.Spec, error) {
	var specs []*materialspec.Spec
	err := r.db.Where("status = ?", materialspec.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&specs).Error
	return specs, err
}

func (r *SpecRepository) Update(s *materialspec.Spec) error {
	s.UpdatedAt = time.Now()
	return r.db.Save(s).Error
}
