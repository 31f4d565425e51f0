package repository

import (
	"linguacert_backend/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) Create(s *model.Schedule) error {
	return r.DB.Create(s).Error
}

func (r *ScheduleRepository) FindAll() ([]model.Schedule, error) {
	var ss []model.Schedule
	err := r.DB.Order("created_at desc").Find(&ss).Error
	return ss, err
}
