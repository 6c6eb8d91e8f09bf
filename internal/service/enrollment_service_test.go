package service

import (
	"testing"
	"time"

	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentService(user *model.User) (*EnrollmentService, *mockEnrollmentRepo) {
	userRepo := newMockUserRepo()
	if user != nil {
		userRepo.users[user.ID] = user
	}
	repo := &mockEnrollmentRepo{}
	return &EnrollmentService{userRepo: userRepo, enrollmentRepo: repo}, repo
}

func TestEnroll(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))

	enrollment, err := svc.Enroll("u1", EnrollInput{
		CourseTitle:    "Go Bootcamp",
		CoursePlatform: "Udemy",
		CourseURL:      "https://www.udemy.com/course/go-bootcamp/",
		Domain:         "Web Development",
		IsPaid:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", enrollment.UserID)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.Completed)
	assert.False(t, enrollment.EnrolledAt.IsZero())
	assert.Equal(t, enrollment.EnrolledAt, enrollment.LastAccessedAt)
}

func TestEnrollUnknownUser(t *testing.T) {
	svc, _ := newEnrollmentService(nil)

	_, err := svc.Enroll("missing", EnrollInput{CourseTitle: "x"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestListByUser(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))
	svc.Enroll("u1", EnrollInput{CourseTitle: "A"})
	svc.Enroll("u1", EnrollInput{CourseTitle: "B"})

	list, err := svc.ListByUser("u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateProgress(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))
	enrollment, err := svc.Enroll("u1", EnrollInput{CourseTitle: "Go Bootcamp"})
	require.NoError(t, err)

	before := enrollment.LastAccessedAt
	time.Sleep(time.Millisecond)

	updated, err := svc.UpdateProgress(enrollment.ID, 55)
	require.NoError(t, err)
	assert.Equal(t, 55, updated.Progress)
	assert.False(t, updated.Completed)
	assert.True(t, updated.LastAccessedAt.After(before))
}

func TestUpdateProgressCompletesAtHundred(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))
	enrollment, err := svc.Enroll("u1", EnrollInput{CourseTitle: "Go Bootcamp"})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(enrollment.ID, 100)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	// Rolling back below 100 clears the flag.
	updated, err = svc.UpdateProgress(enrollment.ID, 99)
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

func TestUpdateProgressOutOfRange(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))
	enrollment, err := svc.Enroll("u1", EnrollInput{CourseTitle: "Go Bootcamp"})
	require.NoError(t, err)

	_, err = svc.UpdateProgress(enrollment.ID, -1)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)

	_, err = svc.UpdateProgress(enrollment.ID, 101)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)
}

func TestUpdateProgressUnknownEnrollment(t *testing.T) {
	svc, _ := newEnrollmentService(testUser("u1", "Web Development"))

	_, err := svc.UpdateProgress("missing", 50)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}
