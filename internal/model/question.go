package model

import "encoding/json"

// Question is one multiple-choice item in the exam bank, tagged by the
// proficiency step it belongs to and one of the step's two levels.
// Options always holds exactly 4 non-empty strings.
// swagger:model Question
type Question struct {
	BaseModel
	Step               int             `gorm:"index;not null" json:"step"`
	Level              string          `gorm:"size:10;index;not null" json:"level"`
	QuestionText       string          `gorm:"type:text;not null" json:"questionText"`
	Options            json.RawMessage `gorm:"type:json;not null" json:"options"`
	CorrectOptionIndex int             `gorm:"not null" json:"correctOptionIndex"`
}

func (Question) TableName() string {
	return "questions"
}

// ClientQuestion is the projection handed to exam takers. It never carries
// the correct option index.
type ClientQuestion struct {
	ID           uint            `json:"id"`
	QuestionText string          `json:"questionText"`
	Options      json.RawMessage `json:"options"`
	Step         int             `json:"step"`
	Level        string          `json:"level"`
}
