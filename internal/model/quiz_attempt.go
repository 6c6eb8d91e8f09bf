package model

import (
	"gorm.io/datatypes"
)

// QuizQuestion is the wire and storage shape of a single multiple-choice
// question: exactly four options, correct answer index 0-3.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// QuizAttempt is immutable once created. The submitted answers use -1 for
// questions the user left unanswered.
type QuizAttempt struct {
	UUIDBase
	UserID         string         `gorm:"index;type:varchar(36);not null" json:"userId"`
	Domain         string         `gorm:"size:100;not null" json:"domain"`
	Questions      datatypes.JSON `gorm:"type:json" json:"questions"`
	Answers        datatypes.JSON `gorm:"type:json" json:"answers"`
	Score          int            `gorm:"not null" json:"score"`
	TotalQuestions int            `gorm:"not null" json:"totalQuestions"`
	SkillLevel     string         `gorm:"size:20" json:"skillLevel"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
