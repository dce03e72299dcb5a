package repositories

import (
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Grant awards an achievement once. Returns true when this call granted
// it, false when the user already had it.
func (r *AchievementRepository) Grant(userID uint, achievementID string) (bool, error) {
	var existing models.UserAchievement
	result := r.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&existing)

	if result.Error == nil {
		return false, nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check achievement")
	}

	grant := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
	}
	if err := r.db.Create(&grant).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to grant achievement")
	}
	return true, nil
}

// ListByUser returns the user's earned achievement ids, oldest first.
func (r *AchievementRepository) ListByUser(userID uint) ([]models.UserAchievement, error) {
	var earned []models.UserAchievement
	result := r.db.Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&earned)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list achievements")
	}
	return earned, nil
}
