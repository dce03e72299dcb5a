package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is a multiple-choice trivia question. CorrectOption is the
// zero-based index into the four options as stored; shuffling for play
// happens in memory, never here.
type Question struct {
	ID            uint      `gorm:"primaryKey"`
	QuestionText  string    `gorm:"type:text;not null"`
	Category      string    `gorm:"type:varchar(50);index"`
	Option1       string    `gorm:"type:text;not null"`
	Option2       string    `gorm:"type:text;not null"`
	Option3       string    `gorm:"type:text;not null"`
	Option4       string    `gorm:"type:text;not null"`
	CorrectOption int       `gorm:"not null"`
	IsActive      bool      `gorm:"default:true;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// OptionsPerQuestion is fixed by the question format.
const OptionsPerQuestion = 4

// Quiz categories offered in the solo quiz menu.
const (
	CategoryGeneral = "general"
	CategoryScience = "science"
	CategoryHistory = "history"
	CategoryMovies  = "movies"
	CategoryMusic   = "music"
)

// Categories lists the selectable categories in menu order.
var Categories = []string{
	CategoryGeneral,
	CategoryScience,
	CategoryHistory,
	CategoryMovies,
	CategoryMusic,
}

// CategoryTitles maps category keys to display names.
var CategoryTitles = map[string]string{
	CategoryGeneral: "General Knowledge",
	CategoryScience: "Science",
	CategoryHistory: "History",
	CategoryMovies:  "Movies",
	CategoryMusic:   "Music",
}

// Options returns the four options in stored order.
func (q *Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// CorrectText returns the text of the correct option.
func (q *Question) CorrectText() string {
	return q.Options()[q.CorrectOption]
}

// BeforeSave hook for validation
func (q *Question) BeforeSave(tx *gorm.DB) error {
	if q.QuestionText == "" {
		return gorm.ErrInvalidData
	}
	if q.Option1 == "" || q.Option2 == "" || q.Option3 == "" || q.Option4 == "" {
		return gorm.ErrInvalidData
	}
	if q.CorrectOption < 0 || q.CorrectOption >= OptionsPerQuestion {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Question) TableName() string {
	return "questions"
}
