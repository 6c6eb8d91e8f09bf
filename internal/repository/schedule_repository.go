package repository

import (
	"skillsphere_backend/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) Create(item *model.ScheduleItem) error {
	return r.DB.Create(item).Error
}

func (r *ScheduleRepository) CreateBatch(items []model.ScheduleItem) ([]model.ScheduleItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	err := r.DB.Create(&items).Error
	return items, err
}

func (r *ScheduleRepository) FindByID(id string) (*model.ScheduleItem, error) {
	var item model.ScheduleItem
	err := r.DB.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *ScheduleRepository) FindByUser(userID string) ([]model.ScheduleItem, error) {
	var items []model.ScheduleItem
	err := r.DB.Where("user_id = ?", userID).
		Order("due_date IS NULL, due_date ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *ScheduleRepository) Update(item *model.ScheduleItem) error {
	return r.DB.Save(item).Error
}
