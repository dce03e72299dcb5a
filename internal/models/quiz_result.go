package models

import (
	"time"
)

// QuizResult is the durable record of a completed solo quiz.
type QuizResult struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category     string    `gorm:"type:varchar(50)"`
	Score        int       `gorm:"default:0"`
	CorrectCount int       `gorm:"default:0"`
	WrongCount   int       `gorm:"default:0"`
	BestStreak   int       `gorm:"default:0"`
	TimeTakenSec int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
