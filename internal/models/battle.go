package models

import (
	"time"
)

// BattleResult is the durable record of a finished battle. Live battle
// state is held in memory only (internal/battle); a row is written here
// exactly once, at completion.
type BattleResult struct {
	ID           uint      `gorm:"primaryKey"`
	Player1ID    uint      `gorm:"not null;index"`
	Player1      User      `gorm:"foreignKey:Player1ID;constraint:OnDelete:CASCADE"`
	Player2ID    uint      `gorm:"not null;index"`
	Player2      User      `gorm:"foreignKey:Player2ID;constraint:OnDelete:CASCADE"`
	Player1Score int       `gorm:"default:0"`
	Player2Score int       `gorm:"default:0"`
	WinnerID     *uint     `gorm:"index"` // nil on a tie
	StartedAt    time.Time `gorm:"not null"`
	FinishedAt   time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (BattleResult) TableName() string {
	return "battle_results"
}

// BattleQueueEntry is a user waiting for a random battle opponent.
type BattleQueueEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (BattleQueueEntry) TableName() string {
	return "battle_queue"
}
