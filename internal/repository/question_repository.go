package repository

import (
	"linguacert_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) ListByStepLevel(step int, level string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("step = ? AND level = ?", step, level).
		Order("created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByStepLevel(step int, level string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("step = ? AND level = ?", step, level).
		Count(&count).Error
	return count, err
}

// SampleByLevels draws up to limit questions without replacement across the
// given levels. Fewer rows than limit is not an error.
func (r *QuestionRepository) SampleByLevels(levels []string, limit int) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("level IN ?", levels).
		Order("RAND()").
		Limit(limit).
		Find(&qs).Error
	return qs, err
}

// FindByIDs bulk-resolves questions. Ids with no row are simply absent from
// the returned map.
func (r *QuestionRepository) FindByIDs(ids []uint) (map[uint]model.Question, error) {
	var qs []model.Question
	if len(ids) == 0 {
		return map[uint]model.Question{}, nil
	}
	if err := r.DB.Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]model.Question, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m, nil
}
