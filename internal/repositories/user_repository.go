package repositories

import (
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateUser registers the user on first contact and refreshes the
// username/first name on subsequent ones.
func (r *UserRepository) GetOrCreateUser(telegramID int64, username, firstName string) (*models.User, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		user = models.User{
			TelegramID:   telegramID,
			Username:     username,
			FirstName:    firstName,
			LastActivity: time.Now(),
		}
		if err := r.db.Create(&user).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
		}
		return &user, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	if user.Username != username || user.FirstName != firstName {
		r.db.Model(&user).Updates(map[string]interface{}{
			"username":   username,
			"first_name": firstName,
		})
	}

	return &user, nil
}

func (r *UserRepository) GetUserByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

func (r *UserRepository) UpdateLastActivity(userID uint) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_activity", time.Now())

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update activity")
	}
	return nil
}

func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}
	return count, nil
}

// GetAllTelegramIDs returns every registered user's chat id, for broadcasts.
func (r *UserRepository) GetAllTelegramIDs() ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&models.User{}).Pluck("telegram_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return ids, nil
}
