package repository

import (
	"skillsphere_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) SaveAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// FindByUser returns attempts newest first.
func (r *QuizRepository) FindByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
