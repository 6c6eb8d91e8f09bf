package model

type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Advanced     SkillLevel = "Advanced"
)

// DomainSkill holds at most one row per (user, domain). Each scored quiz
// attempt overwrites the label; attempt rows are the history.
type DomainSkill struct {
	UUIDBase
	UserID     string     `gorm:"uniqueIndex:idx_user_domain;type:varchar(36);not null" json:"userId"`
	Domain     string     `gorm:"uniqueIndex:idx_user_domain;size:100;not null" json:"domain"`
	SkillLevel SkillLevel `gorm:"size:20;not null" json:"skillLevel"`
}

func (DomainSkill) TableName() string {
	return "domain_skills"
}
