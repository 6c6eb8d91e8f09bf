package service

import (
	"errors"
	"fmt"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"

	"gorm.io/gorm"
)

const completedForLevelUp = 3

type Nudge struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// MentorService produces rule-based nudges from the user's current
// state, no AI involved, so the dashboard always has something to show.
type MentorService struct {
	userRepo       UserFinder
	skillRepo      SkillLister
	enrollmentRepo EnrollmentLister
}

func NewMentorService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository, enrollmentRepo *repository.EnrollmentRepository) *MentorService {
	return &MentorService{
		userRepo:       userRepo,
		skillRepo:      skillRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Nudges evaluates every rule and returns all that fire, assessment
// nudges first.
func (s *MentorService) Nudges(userID string) ([]Nudge, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	skills, err := s.skillRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	nudges := make([]Nudge, 0, 4)

	assessed := make(map[string]bool, len(skills))
	for _, sk := range skills {
		assessed[sk.Domain] = true
	}

	if len(skills) == 0 {
		nudges = append(nudges, Nudge{
			Type:    "assessment",
			Message: "Take your first skill quiz so we can tailor recommendations to your level.",
			Action:  "/quiz",
		})
	} else {
		for _, domain := range user.SelectedDomains {
			if !assessed[domain] {
				nudges = append(nudges, Nudge{
					Type:    "assessment",
					Message: fmt.Sprintf("You haven't assessed your %s skills yet. A quick quiz will sharpen your recommendations.", domain),
					Action:  "/quiz",
				})
			}
		}
	}

	var inProgress []model.Enrollment
	completed := 0
	for _, e := range enrollments {
		if e.Completed {
			completed++
		} else {
			inProgress = append(inProgress, e)
		}
	}

	if len(enrollments) == 0 {
		nudges = append(nudges, Nudge{
			Type:    "enrollment",
			Message: "You're not enrolled in any courses. Browse your recommendations and pick one to start.",
			Action:  "/courses",
		})
	} else if len(inProgress) > 0 {
		// FindByUser orders by enrolled_at, so pick staleness explicitly.
		stale := inProgress[0]
		for _, e := range inProgress[1:] {
			if e.LastAccessedAt.Before(stale.LastAccessedAt) {
				stale = e
			}
		}
		nudges = append(nudges, Nudge{
			Type:    "resume",
			Message: fmt.Sprintf("\"%s\" is waiting at %d%%. Even a short session keeps the streak alive.", stale.CourseTitle, stale.Progress),
			Action:  "/dashboard",
		})
	}

	if completed >= completedForLevelUp {
		nudges = append(nudges, Nudge{
			Type:    "level_up",
			Message: fmt.Sprintf("You've completed %d courses. Retake a skill quiz to see how far you've come.", completed),
			Action:  "/quiz",
		})
	}

	return nudges, nil
}
