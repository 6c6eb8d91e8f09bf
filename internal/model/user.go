package model

import (
	"gorm.io/datatypes"
)

// swagger:model User
type User struct {
	UUIDBase
	Username        string                      `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password        string                      `gorm:"size:100;not null" json:"-"`
	Name            string                      `gorm:"size:100" json:"name"`
	Email           string                      `gorm:"size:100" json:"email"`
	SelectedDomains datatypes.JSONSlice[string] `gorm:"type:json" json:"selectedDomains"`
}

func (User) TableName() string {
	return "users"
}
