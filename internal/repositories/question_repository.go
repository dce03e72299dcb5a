package repositories

import (
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetRandomActiveQuestions retrieves count active questions at random.
// Battle creation aborts unless it gets exactly what it asked for.
func (r *QuestionRepository) GetRandomActiveQuestions(count int) ([]models.Question, error) {
	var questions []models.Question
	result := r.db.Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(count).
		Find(&questions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get questions")
	}
	if len(questions) < count {
		return nil, errors.New(errors.ErrCodeNotFound, "not enough active questions")
	}

	return questions, nil
}

// GetRandomActiveByCategory retrieves up to count active questions of a
// category at random.
func (r *QuestionRepository) GetRandomActiveByCategory(category string, count int) ([]models.Question, error) {
	var questions []models.Question
	result := r.db.Where("is_active = ? AND category = ?", true, category).
		Order("RANDOM()").
		Limit(count).
		Find(&questions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get questions")
	}
	if len(questions) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no questions in category")
	}

	return questions, nil
}

func (r *QuestionRepository) CreateQuestion(question *models.Question) error {
	if err := r.db.Create(question).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create question")
	}
	return nil
}

func (r *QuestionRepository) GetQuestionByID(id uint) (*models.Question, error) {
	var question models.Question
	result := r.db.First(&question, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "question not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get question")
	}

	return &question, nil
}

// ToggleActive flips a question's active flag and returns the new value.
func (r *QuestionRepository) ToggleActive(id uint) (bool, error) {
	question, err := r.GetQuestionByID(id)
	if err != nil {
		return false, err
	}

	newState := !question.IsActive
	result := r.db.Model(&models.Question{}).
		Where("id = ?", id).
		Update("is_active", newState)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to toggle question")
	}
	return newState, nil
}

func (r *QuestionRepository) CountQuestions() (total int64, active int64, err error) {
	if err = r.db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count questions")
	}
	if err = r.db.Model(&models.Question{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count active questions")
	}
	return total, active, nil
}
