package models

import (
	"time"
)

// Achievement IDs. The catalog itself is static (see handlers), only the
// grants are persisted.
const (
	AchievementQuizStarter  = "quiz_starter"
	AchievementStreak3      = "streak_3"
	AchievementStreak10     = "streak_10"
	AchievementBattleWinner = "battle_winner"
)

// UserAchievement records a single grant; the unique index gives
// grant-once semantics at the database level.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AchievementID string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_achievement"`
	EarnedAt      time.Time `gorm:"autoCreateTime"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
