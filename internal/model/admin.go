package model

// Admin is a separate identity from User: admins manage the question bank
// and review analytics, they never sit exams.
// swagger:model Admin
type Admin struct {
	BaseModel
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
