package service

import (
	"testing"
	"time"

	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMentorService(user *model.User) (*MentorService, *mockSkillRepo, *mockEnrollmentRepo) {
	userRepo := newMockUserRepo()
	if user != nil {
		userRepo.users[user.ID] = user
	}
	skills := newMockSkillRepo()
	enrollments := &mockEnrollmentRepo{}
	return &MentorService{userRepo: userRepo, skillRepo: skills, enrollmentRepo: enrollments}, skills, enrollments
}

func nudgeTypes(nudges []Nudge) []string {
	types := make([]string, len(nudges))
	for i, n := range nudges {
		types[i] = n.Type
	}
	return types
}

func TestNudgesFreshUser(t *testing.T) {
	svc, _, _ := newMentorService(testUser("u1", "Web Development"))

	nudges, err := svc.Nudges("u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"assessment", "enrollment"}, nudgeTypes(nudges))
}

func TestNudgesUnassessedDomain(t *testing.T) {
	svc, skills, _ := newMentorService(testUser("u1", "Web Development", "DevOps"))
	skills.Upsert("u1", "Web Development", model.Beginner)

	nudges, err := svc.Nudges("u1")
	require.NoError(t, err)

	types := nudgeTypes(nudges)
	assert.Contains(t, types, "assessment")
	found := false
	for _, n := range nudges {
		if n.Type == "assessment" {
			assert.Contains(t, n.Message, "DevOps")
			found = true
		}
	}
	assert.True(t, found)
}

func TestNudgesNoAssessmentWhenAllDomainsCovered(t *testing.T) {
	svc, skills, enrollments := newMentorService(testUser("u1", "Web Development"))
	skills.Upsert("u1", "Web Development", model.Intermediate)
	enrollments.Create(&model.Enrollment{UserID: "u1", CourseTitle: "HTML", Progress: 10})

	nudges, err := svc.Nudges("u1")
	require.NoError(t, err)
	assert.NotContains(t, nudgeTypes(nudges), "assessment")
}

func TestNudgesResumePicksStalest(t *testing.T) {
	svc, skills, enrollments := newMentorService(testUser("u1", "Web Development"))
	skills.Upsert("u1", "Web Development", model.Intermediate)

	now := time.Now()
	enrollments.Create(&model.Enrollment{UserID: "u1", CourseTitle: "Fresh", Progress: 50, LastAccessedAt: now})
	enrollments.Create(&model.Enrollment{UserID: "u1", CourseTitle: "Stale", Progress: 20, LastAccessedAt: now.Add(-72 * time.Hour)})

	nudges, err := svc.Nudges("u1")
	require.NoError(t, err)

	require.Contains(t, nudgeTypes(nudges), "resume")
	for _, n := range nudges {
		if n.Type == "resume" {
			assert.Contains(t, n.Message, "Stale")
			assert.Contains(t, n.Message, "20%")
		}
	}
}

func TestNudgesLevelUpAfterThreeCompletions(t *testing.T) {
	svc, skills, enrollments := newMentorService(testUser("u1", "Web Development"))
	skills.Upsert("u1", "Web Development", model.Advanced)
	for _, title := range []string{"A", "B", "C"} {
		enrollments.Create(&model.Enrollment{UserID: "u1", CourseTitle: title, Progress: 100, Completed: true})
	}

	nudges, err := svc.Nudges("u1")
	require.NoError(t, err)

	types := nudgeTypes(nudges)
	assert.Contains(t, types, "level_up")
	assert.NotContains(t, types, "resume")
	assert.NotContains(t, types, "enrollment")
}

func TestNudgesUnknownUser(t *testing.T) {
	svc, _, _ := newMentorService(nil)

	_, err := svc.Nudges("missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
