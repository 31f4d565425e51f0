package repository

import (
	"linguacert_backend/internal/model"

	"gorm.io/gorm"
)

type VisitRepository struct {
	DB *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{DB: db}
}

func (r *VisitRepository) Create(v *model.Visit) error {
	return r.DB.Create(v).Error
}

func (r *VisitRepository) FindAll() ([]model.Visit, error) {
	var vs []model.Visit
	err := r.DB.Order("timestamp desc").Find(&vs).Error
	return vs, err
}
