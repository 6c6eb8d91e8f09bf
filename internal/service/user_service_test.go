package service

import (
	"testing"

	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardCreatesUser(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := &UserService{userRepo: userRepo, skillRepo: newMockSkillRepo()}

	user, err := svc.Onboard("", "Grace Hopper", "grace@example.com", []string{"Data Science"})
	require.NoError(t, err)
	assert.Equal(t, "grace-hopper", user.Username)
	assert.Equal(t, "Grace Hopper", user.Name)
	assert.Equal(t, []string{"Data Science"}, []string(user.SelectedDomains))
	assert.NotEmpty(t, user.Password)
}

func TestOnboardDisambiguatesUsername(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := &UserService{userRepo: userRepo, skillRepo: newMockSkillRepo()}

	first, err := svc.Onboard("", "Grace Hopper", "grace@example.com", []string{"Data Science"})
	require.NoError(t, err)
	second, err := svc.Onboard("", "Grace Hopper", "grace2@example.com", []string{"DevOps"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Username, second.Username)
	assert.Contains(t, second.Username, "grace-hopper-")
}

func TestOnboardUpdatesExistingUser(t *testing.T) {
	user := testUser("u1", "Web Development")
	svc := &UserService{userRepo: newMockUserRepo(user), skillRepo: newMockSkillRepo()}

	updated, err := svc.Onboard("u1", "New Name", "new@example.com", []string{"DevOps", "Cloud Computing"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, []string{"DevOps", "Cloud Computing"}, []string(updated.SelectedDomains))
}

func TestOnboardUnknownUser(t *testing.T) {
	svc := &UserService{userRepo: newMockUserRepo(), skillRepo: newMockSkillRepo()}

	_, err := svc.Onboard("missing", "Name", "x@example.com", nil)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetIncludesSkills(t *testing.T) {
	user := testUser("u1", "Web Development")
	skills := newMockSkillRepo()
	skills.Upsert("u1", "Web Development", model.Intermediate)
	svc := &UserService{userRepo: newMockUserRepo(user), skillRepo: skills}

	profile, err := svc.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, user, profile.User)
	assert.Equal(t, map[string]string{"Web Development": "Intermediate"}, profile.Skills)
}

func TestGetUnknownUser(t *testing.T) {
	svc := &UserService{userRepo: newMockUserRepo(), skillRepo: newMockSkillRepo()}

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	user := testUser("u1", "Web Development")
	user.Name = "Original"
	user.Email = "original@example.com"
	svc := &UserService{userRepo: newMockUserRepo(user), skillRepo: newMockSkillRepo()}

	updated, err := svc.UpdateProfile("u1", "", "new@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, []string{"Web Development"}, []string(updated.SelectedDomains))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grace Hopper", "grace-hopper"},
		{"  Ada  ", "ada"},
		{"Jean-Luc", "jean-luc"},
		{"李小龙", ""},
		{"User_42", "user-42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), "input %q", tt.in)
	}
}
