package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID         string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	CourseID       string    `gorm:"size:100" json:"courseId,omitempty"`
	CourseTitle    string    `gorm:"size:255;not null" json:"courseTitle"`
	CoursePlatform string    `gorm:"size:100" json:"coursePlatform"`
	CourseURL      string    `gorm:"size:500;not null" json:"courseUrl"`
	Domain         string    `gorm:"size:100;not null" json:"domain"`
	IsPaid         bool      `gorm:"default:false" json:"isPaid"`
	Progress       int       `gorm:"default:0" json:"progress"`
	Completed      bool      `gorm:"default:false" json:"completed"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	SkillLevel     string    `gorm:"size:20" json:"skillLevel,omitempty"`
	Duration       string    `gorm:"size:50" json:"duration,omitempty"`
	Rating         string    `gorm:"size:20" json:"rating,omitempty"`
	Price          string    `gorm:"size:50" json:"price,omitempty"`
	EnrolledAt     time.Time `json:"enrolledAt"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
