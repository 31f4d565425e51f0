package model

import "time"

// User accounts are created in two phases: a bare row when the email
// verification code is first requested, then filled in on registration.
// swagger:model User
type User struct {
	BaseModel
	Name          string     `gorm:"size:100" json:"name"`
	Email         string     `gorm:"size:100;unique;not null" json:"email"`
	Password      string     `gorm:"size:100" json:"-"`
	Country       string     `gorm:"size:100" json:"country"`
	DOB           *time.Time `json:"dob,omitempty"`
	EmailVerified bool       `gorm:"default:false" json:"emailVerified"`
	RefreshToken  string     `gorm:"size:512" json:"-"`
}

func (User) TableName() string {
	return "users"
}
