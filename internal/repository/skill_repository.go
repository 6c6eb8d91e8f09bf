package repository

import (
	"skillsphere_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// Upsert overwrites any existing label for (user, domain). Last write wins;
// attempt rows keep the history.
func (r *SkillRepository) Upsert(userID, domain string, level model.SkillLevel) error {
	skill := model.DomainSkill{UserID: userID, Domain: domain}
	return r.DB.Where("user_id = ? AND domain = ?", userID, domain).
		Assign(model.DomainSkill{SkillLevel: level}).
		FirstOrCreate(&skill).Error
}

func (r *SkillRepository) FindByUser(userID string) ([]model.DomainSkill, error) {
	var skills []model.DomainSkill
	err := r.DB.Where("user_id = ?", userID).Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindByUserAndDomain(userID, domain string) (*model.DomainSkill, error) {
	var skill model.DomainSkill
	err := r.DB.Where("user_id = ? AND domain = ?", userID, domain).First(&skill).Error
	return &skill, err
}
