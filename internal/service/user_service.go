package service

import (
	"errors"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SkillLister interface {
	FindByUser(userID string) ([]model.DomainSkill, error)
}

type UserStore interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Update(user *model.User) error
}

type UserService struct {
	userRepo  UserStore
	skillRepo SkillLister
}

func NewUserService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository) *UserService {
	return &UserService{userRepo: userRepo, skillRepo: skillRepo}
}

type UserProfile struct {
	User   *model.User       `json:"user"`
	Skills map[string]string `json:"skills"`
}

// Onboard creates or updates a user with their selected learning domains.
// When userID is set it must refer to an existing user; a fresh onboard
// creates one with a slug-derived username and an unusable password, the
// account is claimed later through registration.
func (s *UserService) Onboard(userID, name, email string, domains []string) (*model.User, error) {
	if userID != "" {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrUserNotFound
			}
			return nil, err
		}
		user.Name = name
		user.Email = email
		user.SelectedDomains = datatypes.NewJSONSlice(domains)
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	username := slugify(name)
	if username == "" {
		username = "learner"
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		username = username + "-" + uuid.New().String()[:8]
	}

	// Placeholder credential, never accepted at login.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:        username,
		Password:        string(hashed),
		Name:            name,
		Email:           email,
		SelectedDomains: datatypes.NewJSONSlice(domains),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user together with their assessed skill levels keyed
// by domain.
func (s *UserService) Get(userID string) (*UserProfile, error) {
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

	skillMap := make(map[string]string, len(skills))
	for _, sk := range skills {
		skillMap[sk.Domain] = string(sk.SkillLevel)
	}
	return &UserProfile{User: user, Skills: skillMap}, nil
}

// UpdateProfile overwrites the mutable profile fields. Empty values keep
// the stored ones; domains replace wholesale when provided.
func (s *UserService) UpdateProfile(userID, name, email string, domains []string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if domains != nil {
		user.SelectedDomains = datatypes.NewJSONSlice(domains)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
