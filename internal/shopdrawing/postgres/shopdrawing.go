package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/shopdrawing"
)

// DrawingRepository implements shopdrawing.Repository using GORM.
type DrawingRepository struct {
	db *gorm.DB
}

func NewDrawingRepository(db *gorm.DB) shopdrawing.Repository {
	return &DrawingRepository{db: db}
}

func (r *DrawingRepository) Create(d *shopdrawing.Drawing) error {
	return r.db.Create(d).Error
}

func (r *DrawingRepository) GetByID(id int64) (*shopdrawing.Drawing, error) {
	var d shopdrawing.Drawing
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDrawingNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DrawingRepository) ListByProject(projectID int64, status string, limit, offset int) ([]*shopdrawing.Drawing, error) {
	var drawings []*shopdrawing.Drawing
	query := r.db.Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&drawings).Error
	return drawings, err
}

func (r *DrawingRepository) ListPendingReview(limit, offset int) ([]*shopdrawing.Drawing, error) {
	var drawings []*shopdrawing.Drawing
	err := r.db.Where("status = ?", shopdrawing.StatusPendingReview).
		Order("submitted_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&drawings).Error
	return drawings, err
}

func (r *DrawingRepository) Update(d *shopdrawing.Drawing) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}
