package model

import "encoding/json"

// Answer is one submitted answer. SelectedIndex is -1 when the taker left
// the question blank.
type Answer struct {
	QuestionID    uint `json:"questionId"`
	SelectedIndex int  `json:"selectedIndex"`
}

// Result is the persisted outcome of one exam attempt. At most one row
// exists per (user_id, step) for signed-in takers; the composite unique key
// backs the submission upsert. Anonymous attempts carry a NULL user_id and
// therefore never collide.
// swagger:model Result
type Result struct {
	UUIDBase
	UserID        *string         `gorm:"size:64;uniqueIndex:uidx_results_user_step" json:"userId"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Email         *string         `gorm:"size:100" json:"email"`
	Step          int             `gorm:"not null;uniqueIndex:uidx_results_user_step" json:"step"`
	Level         string          `gorm:"size:10" json:"level"`
	Score         int             `gorm:"not null" json:"score"`
	Total         int             `gorm:"not null" json:"total"`
	Percentage    float64         `gorm:"not null" json:"percentage"`
	Certification string          `gorm:"size:50;not null" json:"certification"`
	Answers       json.RawMessage `gorm:"type:json" json:"answers"`
}

func (Result) TableName() string {
	return "results"
}
