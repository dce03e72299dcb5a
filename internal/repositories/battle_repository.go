package repositories

import (
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type BattleRepository struct {
	db *gorm.DB
}

func NewBattleRepository(db *gorm.DB) *BattleRepository {
	return &BattleRepository{db: db}
}

// RecordResult persists a finished battle. Failures here never roll back
// the in-memory outcome, callers log and move on.
func (r *BattleRepository) RecordResult(result *models.BattleResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record battle result")
	}
	return nil
}

func (r *BattleRepository) CountBattles() (int64, error) {
	var count int64
	if err := r.db.Model(&models.BattleResult{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count battles")
	}
	return count, nil
}

// AddToQueue puts a user into the matchmaking queue. Re-joining while
// already queued is not an error.
func (r *BattleRepository) AddToQueue(userID uint) error {
	entry := models.BattleQueueEntry{UserID: userID}
	result := r.db.Where("user_id = ?", userID).FirstOrCreate(&entry)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to join queue")
	}
	return nil
}

// PopOldest removes and returns the longest-waiting queued user other
// than excludeUserID. Returns ErrCodeNotFound when the queue is empty.
func (r *BattleRepository) PopOldest(excludeUserID uint) (*models.BattleQueueEntry, error) {
	var entry models.BattleQueueEntry
	result := r.db.Where("user_id <> ?", excludeUserID).
		Order("created_at ASC").
		First(&entry)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "queue is empty")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to read queue")
	}

	if err := r.db.Delete(&entry).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to pop queue entry")
	}
	return &entry, nil
}

// RemoveFromQueue drops a user's queue entry if present.
func (r *BattleRepository) RemoveFromQueue(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.BattleQueueEntry{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to leave queue")
	}
	return nil
}

func (r *BattleRepository) IsQueued(userID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.BattleQueueEntry{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check queue")
	}
	return count > 0, nil
}
