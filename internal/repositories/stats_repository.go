package repositories

import (
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetOrCreateStats returns the user's stats row, creating a zeroed one
// on first use.
func (r *StatsRepository) GetOrCreateStats(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	result := r.db.Where("user_id = ?", userID).FirstOrCreate(&stats, models.UserStats{UserID: userID})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get stats")
	}
	return &stats, nil
}

// ApplyAnswer updates the answer counters and streak bookkeeping after a
// single solo quiz answer. streak is the user's current run of correct
// answers as tracked by the quiz session.
func (r *StatsRepository) ApplyAnswer(userID uint, correct bool, streak int) error {
	stats, err := r.GetOrCreateStats(userID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"current_streak": streak,
	}
	if correct {
		updates["correct_answers"] = gorm.Expr("correct_answers + 1")
	} else {
		updates["wrong_answers"] = gorm.Expr("wrong_answers + 1")
	}
	if streak > stats.HighestStreak {
		updates["highest_streak"] = streak
	}

	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update answer stats")
	}
	return nil
}

// AddScore credits points to the user's lifetime total.
func (r *StatsRepository) AddScore(userID uint, points int) error {
	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_score", gorm.Expr("total_score + ?", points))
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to add score")
	}
	return nil
}

// IncrementQuizzes bumps the completed quiz counter and returns the new
// total, which achievement checks read.
func (r *StatsRepository) IncrementQuizzes(userID uint) (int, error) {
	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_quizzes", gorm.Expr("total_quizzes + 1"))
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count quiz")
	}

	stats, err := r.GetOrCreateStats(userID)
	if err != nil {
		return 0, err
	}
	return stats.TotalQuizzes, nil
}

// RecordBattleOutcome bumps the battle counters for one participant.
func (r *StatsRepository) RecordBattleOutcome(userID uint, won bool) error {
	updates := map[string]interface{}{
		"battles_played": gorm.Expr("battles_played + 1"),
	}
	if won {
		updates["battles_won"] = gorm.Expr("battles_won + 1")
	}

	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to record battle outcome")
	}
	return nil
}

// GetLeaderboard returns the top users by lifetime score, user preloaded
// for display names.
func (r *StatsRepository) GetLeaderboard(limit int) ([]models.UserStats, error) {
	var entries []models.UserStats
	result := r.db.Preload("User").
		Where("total_score > 0").
		Order("total_score DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get leaderboard")
	}
	return entries, nil
}

// TotalPoints sums every user's lifetime score, for the admin overview.
func (r *StatsRepository) TotalPoints() (int64, error) {
	var total int64
	result := r.db.Model(&models.UserStats{}).
		Select("COALESCE(SUM(total_score), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to sum points")
	}
	return total, nil
}

// SaveQuizResult persists a completed solo quiz run.
func (r *StatsRepository) SaveQuizResult(result *models.QuizResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save quiz result")
	}
	return nil
}
