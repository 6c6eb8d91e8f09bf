package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"skillsphere_backend/pkg/logger"
	"skillsphere_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// minValidCourses is the cutoff below which the whole AI response is
// discarded in favor of the static fallback set.
const minValidCourses = 6

type SkillReader interface {
	FindByUserAndDomain(userID, domain string) (*model.DomainSkill, error)
}

type Course struct {
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	IsPaid      bool   `json:"isPaid"`
	Description string `json:"description,omitempty"`
	SkillLevel  string `json:"skillLevel,omitempty"`
}

type RecommendationService struct {
	userRepo  UserFinder
	skillRepo SkillReader
	ai        AIClient
}

func NewRecommendationService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository, ai AIClient) *RecommendationService {
	return &RecommendationService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
		ai:        ai,
	}
}

// IsValidCourseURL accepts only URLs shaped like direct course pages on a
// known provider. Bare homepages never pass. This guards against
// hallucinated links by shape only; reachability is not checked.
func IsValidCourseURL(raw string) bool {
	u := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return false
	}

	switch {
	case strings.Contains(u, "youtube.com"):
		return hasTrailingSegment(u, "youtube.com/watch?v=")
	case strings.Contains(u, "coursera.org"):
		return hasTrailingSegment(u, "/learn/") || hasTrailingSegment(u, "/specializations/")
	case strings.Contains(u, "udemy.com"):
		return hasTrailingSegment(u, "/course/")
	case strings.Contains(u, "freecodecamp.org"):
		return hasTrailingSegment(u, "/learn/")
	case strings.Contains(u, "edx.org"):
		return hasTrailingSegment(u, "/course/") || hasTrailingSegment(u, "/learn/")
	case strings.Contains(u, "codecademy.com"):
		return hasTrailingSegment(u, "/learn/")
	default:
		// Unrecognized provider shapes are rejected rather than guessed at.
		return false
	}
}

// hasTrailingSegment reports whether u contains marker with at least one
// character after it, so "https://www.udemy.com/course/" alone fails.
func hasTrailingSegment(u, marker string) bool {
	idx := strings.Index(u, marker)
	return idx >= 0 && len(u) > idx+len(marker)
}

// Sanitize filters candidates down to the ones whose URL shape passes.
func Sanitize(candidates []Course) []Course {
	valid := make([]Course, 0, len(candidates))
	for _, c := range candidates {
		if IsValidCourseURL(c.URL) {
			valid = append(valid, c)
		}
	}
	return valid
}

const recommendSystemPrompt = "You are a learning path expert. Recommend real, high-quality courses from reputable platforms."

// Recommend asks the AI for courses and sanitizes the result. Anything
// short of minValidCourses discards the AI response entirely.
func (s *RecommendationService) Recommend(ctx context.Context, domain, skillLevel string) ([]Course, error) {
	prompt := fmt.Sprintf(`Recommend 6 high-quality courses for learning %s at %s level.
Include a mix of FREE and paid options, with preference for free courses.

For each course provide:
- title: Course name
- platform: Platform name (Coursera, freeCodeCamp, YouTube, Udemy, etc.)
- url: Direct course URL
- isPaid: true/false
- description: Brief course description (max 100 characters)
- skillLevel: %s

Return ONLY valid JSON:
{
  "courses": [
    {
      "title": "Course Title",
      "platform": "Platform Name",
      "url": "https://...",
      "isPaid": false,
      "description": "Brief description",
      "skillLevel": "%s"
    }
  ]
}`, domain, skillLevel, skillLevel, skillLevel)

	content, err := s.ai.CompleteJSON(ctx, recommendSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("AI course recommendation failed, serving fallback set",
			zap.String("domain", domain), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("recommendations").Inc()
		return FallbackCourses(domain, skillLevel), nil
	}

	var payload struct {
		Courses []Course `json:"courses"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		logger.Log.Warn("AI course recommendation unparseable, serving fallback set",
			zap.String("domain", domain), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("recommendations").Inc()
		return FallbackCourses(domain, skillLevel), nil
	}

	valid := Sanitize(payload.Courses)
	if len(valid) < minValidCourses {
		logger.Log.Warn("AI course recommendation failed validation, serving fallback set",
			zap.String("domain", domain),
			zap.Int("candidates", len(payload.Courses)),
			zap.Int("valid", len(valid)))
		monitoring.AIFallbackCounter.WithLabelValues("recommendations").Inc()
		return FallbackCourses(domain, skillLevel), nil
	}

	return valid, nil
}

// RecommendForUser resolves the domain (explicit or the user's first
// selected one) and stored skill level (Beginner when unassessed).
func (s *RecommendationService) RecommendForUser(ctx context.Context, userID, domain string) ([]Course, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if domain == "" {
		if len(user.SelectedDomains) == 0 {
			return nil, fmt.Errorf("user has no selected domains")
		}
		domain = user.SelectedDomains[0]
	}

	skillLevel := string(model.Beginner)
	if skill, err := s.skillRepo.FindByUserAndDomain(userID, domain); err == nil {
		skillLevel = string(skill.SkillLevel)
	}

	return s.Recommend(ctx, domain, skillLevel)
}

// knownDomainURLs maps a domain to known-good direct course pages per
// provider. Domains outside the table get provider search URLs instead.
var knownDomainURLs = map[string]struct {
	freeCodeCamp string
	youtube      string
	coursera     string
	udemy        string
}{
	"Web Development": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/2022/responsive-web-design/",
		youtube:      "https://www.youtube.com/watch?v=nu_pCVPKzTk",
		coursera:     "https://www.coursera.org/learn/html-css-javascript-for-web-developers",
		udemy:        "https://www.udemy.com/course/the-complete-web-development-bootcamp/",
	},
	"Data Science": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/data-analysis-with-python/",
		youtube:      "https://www.youtube.com/watch?v=ua-CiDNNj30",
		coursera:     "https://www.coursera.org/specializations/jhu-data-science",
		udemy:        "https://www.udemy.com/course/the-data-science-course-complete-data-science-bootcamp/",
	},
	"Machine Learning": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/machine-learning-with-python/",
		youtube:      "https://www.youtube.com/watch?v=i_LwzRVP7bg",
		coursera:     "https://www.coursera.org/specializations/machine-learning-introduction",
		udemy:        "https://www.udemy.com/course/machinelearning/",
	},
	"Mobile Development": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/front-end-development-libraries/",
		youtube:      "https://www.youtube.com/watch?v=0-S5a0eXPoc",
		coursera:     "https://www.coursera.org/learn/flutter",
		udemy:        "https://www.udemy.com/course/flutter-bootcamp-with-dart/",
	},
	"Cybersecurity": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/information-security/",
		youtube:      "https://www.youtube.com/watch?v=U_P23SqJaDc",
		coursera:     "https://www.coursera.org/specializations/ibm-cybersecurity-analyst",
		udemy:        "https://www.udemy.com/course/the-complete-internet-security-privacy-course-volume-1/",
	},
	"Cloud Computing": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/relational-database/",
		youtube:      "https://www.youtube.com/watch?v=2LaAJq1lB1Q",
		coursera:     "https://www.coursera.org/specializations/cloud-computing",
		udemy:        "https://www.udemy.com/course/aws-certified-cloud-practitioner-new/",
	},
	"UI/UX Design": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/2022/responsive-web-design/",
		youtube:      "https://www.youtube.com/watch?v=c9Wg6Cb_YlU",
		coursera:     "https://www.coursera.org/specializations/google-ux-design",
		udemy:        "https://www.udemy.com/course/ui-ux-web-design-using-adobe-xd/",
	},
	"DevOps": {
		freeCodeCamp: "https://www.freecodecamp.org/learn/relational-database/",
		youtube:      "https://www.youtube.com/watch?v=j5Zsa_eOXeY",
		coursera:     "https://www.coursera.org/specializations/devops-cloud-and-agile-foundations",
		udemy:        "https://www.udemy.com/course/devops-beginners-to-advanced/",
	},
}

// FallbackCourses is the deterministic substitute: a free micro-course, a
// free video, a free MOOC and one paid option for the domain.
func FallbackCourses(domain, skillLevel string) []Course {
	urls, known := knownDomainURLs[domain]
	if !known {
		q := url.QueryEscape(domain)
		urls.freeCodeCamp = "https://www.freecodecamp.org/news/search/?query=" + q
		urls.youtube = "https://www.youtube.com/results?search_query=" + q + "+full+course"
		urls.coursera = "https://www.coursera.org/search?query=" + q
		urls.udemy = "https://www.udemy.com/courses/search/?q=" + q
	}

	return []Course{
		{
			Title:       fmt.Sprintf("%s Curriculum", domain),
			Platform:    "freeCodeCamp",
			URL:         urls.freeCodeCamp,
			IsPaid:      false,
			Description: fmt.Sprintf("Hands-on %s curriculum with projects", domain),
			SkillLevel:  skillLevel,
		},
		{
			Title:       fmt.Sprintf("%s Full Course", domain),
			Platform:    "YouTube",
			URL:         urls.youtube,
			IsPaid:      false,
			Description: fmt.Sprintf("Free full-length %s video course", domain),
			SkillLevel:  skillLevel,
		},
		{
			Title:       fmt.Sprintf("%s Specialization", domain),
			Platform:    "Coursera",
			URL:         urls.coursera,
			IsPaid:      false,
			Description: fmt.Sprintf("University-backed %s program, free to audit", domain),
			SkillLevel:  skillLevel,
		},
		{
			Title:       fmt.Sprintf("The Complete %s Bootcamp", domain),
			Platform:    "Udemy",
			URL:         urls.udemy,
			IsPaid:      true,
			Description: fmt.Sprintf("Comprehensive paid %s bootcamp", domain),
			SkillLevel:  skillLevel,
		},
	}
}
