package model

import "time"

// swagger:model Visit
type Visit struct {
	BaseModel
	IP        string    `gorm:"size:45;not null" json:"ip"`
	Country   string    `gorm:"size:100;not null" json:"country"`
	City      string    `gorm:"size:100;not null" json:"city"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (Visit) TableName() string {
	return "visits"
}
