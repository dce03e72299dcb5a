package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	TelegramID   int64     `gorm:"uniqueIndex;not null"`
	Username     string    `gorm:"type:varchar(255);index"`
	FirstName    string    `gorm:"type:varchar(255);not null"`
	IsAdmin      bool      `gorm:"default:false"`
	LastActivity time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// DisplayName returns the @username when set, otherwise the first name.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.TelegramID == 0 {
		return gorm.ErrInvalidData
	}
	if u.FirstName == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

// UserStats accumulates lifetime quiz and battle statistics for a user.
type UserStats struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"uniqueIndex;not null"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TotalQuizzes   int       `gorm:"default:0"`
	CorrectAnswers int       `gorm:"default:0"`
	WrongAnswers   int       `gorm:"default:0"`
	CurrentStreak  int       `gorm:"default:0"`
	HighestStreak  int       `gorm:"default:0"`
	TotalScore     int64     `gorm:"default:0;index"`
	BattlesPlayed  int       `gorm:"default:0"`
	BattlesWon     int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
