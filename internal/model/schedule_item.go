package model

import "time"

// swagger:model ScheduleItem
type ScheduleItem struct {
	UUIDBase
	UserID      string     `gorm:"index;type:varchar(36);not null" json:"userId"`
	CourseID    *string    `gorm:"type:varchar(36)" json:"courseId,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `gorm:"default:false" json:"completed"`
}

func (ScheduleItem) TableName() string {
	return "schedule_items"
}
