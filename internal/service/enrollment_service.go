package service

import (
	"errors"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepo interface {
	Create(enrollment *model.Enrollment) error
	FindByID(id string) (*model.Enrollment, error)
	FindByUser(userID string) ([]model.Enrollment, error)
	Update(enrollment *model.Enrollment) error
}

type EnrollmentService struct {
	userRepo       UserFinder
	enrollmentRepo EnrollmentRepo
}

func NewEnrollmentService(userRepo *repository.UserRepository, enrollmentRepo *repository.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{userRepo: userRepo, enrollmentRepo: enrollmentRepo}
}

type EnrollInput struct {
	CourseID       string `json:"courseId"`
	CourseTitle    string `json:"courseTitle" binding:"required"`
	CoursePlatform string `json:"coursePlatform"`
	CourseURL      string `json:"courseUrl"`
	Domain         string `json:"domain"`
	IsPaid         bool   `json:"isPaid"`
	Description    string `json:"description"`
	SkillLevel     string `json:"skillLevel"`
	Duration       string `json:"duration"`
	Rating         string `json:"rating"`
	Price          string `json:"price"`
}

// Enroll records a course for the user with progress starting at zero.
func (s *EnrollmentService) Enroll(userID string, in EnrollInput) (*model.Enrollment, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	enrollment := &model.Enrollment{
		UserID:         userID,
		CourseID:       in.CourseID,
		CourseTitle:    in.CourseTitle,
		CoursePlatform: in.CoursePlatform,
		CourseURL:      in.CourseURL,
		Domain:         in.Domain,
		IsPaid:         in.IsPaid,
		Description:    in.Description,
		SkillLevel:     in.SkillLevel,
		Duration:       in.Duration,
		Rating:         in.Rating,
		Price:          in.Price,
		EnrolledAt:     now,
		LastAccessedAt: now,
	}
	if err := s.enrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByUser(userID string) ([]model.Enrollment, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.enrollmentRepo.FindByUser(userID)
}

// UpdateProgress sets progress in [0,100], marks the enrollment completed
// exactly at 100 and touches the last-accessed timestamp.
func (s *EnrollmentService) UpdateProgress(enrollmentID string, progress int) (*model.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrInvalidProgress
	}

	enrollment, err := s.enrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	enrollment.Progress = progress
	enrollment.Completed = progress == 100
	enrollment.LastAccessedAt = time.Now()

	if err := s.enrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
