package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/project"
)

// ProjectRepository implements project.Repository using GORM.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var p project.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(limit, offset int) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(p *project.Project) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}

func (r *ProjectRepository) Delete(id int64) error {
	return r.db.Delete(&project.Project{}, id).Error
}
