package repository

import (
	"linguacert_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Upsert writes the submission outcome as a single conditional write.
// Signed-in takers hit the (user_id, step) unique key, so a resubmission
// overwrites the existing row instead of inserting a second one; MySQL
// resolves the race between concurrent submissions for the same pair.
// Anonymous results carry a NULL user_id, which never conflicts, so every
// anonymous submission inserts a fresh row.
func (r *ResultRepository) Upsert(result *model.Result) (*model.Result, error) {
	if result.UserID == nil {
		if err := r.DB.Create(result).Error; err != nil {
			return nil, err
		}
		return result, nil
	}

	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "step"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "level", "score", "total",
			"percentage", "certification", "answers", "updated_at",
		}),
	}).Create(result).Error
	if err != nil {
		return nil, err
	}

	// On conflict the generated id above was discarded; read back the
	// canonical row.
	var saved model.Result
	err = r.DB.Where("user_id = ? AND step = ?", *result.UserID, result.Step).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ResultRepository) FindLatest(userID string, step int) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("user_id = ? AND step = ?", userID, step).
		Order("created_at desc").
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) FindAllForUser(userID string) ([]model.Result, error) {
	var rs []model.Result
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rs).Error
	return rs, err
}

func (r *ResultRepository) FindAll() ([]model.Result, error) {
	var rs []model.Result
	err := r.DB.Order("created_at desc").Find(&rs).Error
	return rs, err
}
