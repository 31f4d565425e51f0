package model

// Schedule is a consultation booking left by a site visitor.
// swagger:model Schedule
type Schedule struct {
	BaseModel
	Date            string `gorm:"size:20;not null" json:"date"`
	Time            string `gorm:"size:20;not null" json:"time"`
	Email           string `gorm:"size:100;not null" json:"email"`
	Phone           string `gorm:"size:30;not null" json:"phone"`
	Description     string `gorm:"type:text" json:"description"`
	MeetingPlatform string `gorm:"size:50;not null" json:"meetingPlatform"`
}

func (Schedule) TableName() string {
	return "schedules"
}
