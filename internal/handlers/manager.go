package handlers

import (
	"sync"

	"github.com/Tohidkhan6332/quizbot/internal/battle"
	"github.com/Tohidkhan6332/quizbot/internal/config"
	"github.com/Tohidkhan6332/quizbot/internal/repositories"
	"gorm.io/gorm"
)

// BotInterface abstracts the telegram layer so handlers never import it.
// SendMessage returns the sent message id (0 on failure). EditMessage
// with a nil keyboard strips the inline buttons.
type BotInterface interface {
	SendMessage(chatID int64, text string, keyboard interface{}) int
	EditMessage(chatID int64, messageID int, text string, keyboard interface{})
	AnswerCallback(callbackID string, text string)
	Username() string
}

// Admin input states. While set, the next plain message from that admin
// is consumed by the pending flow instead of the command router.
const (
	StateAwaitingQuestion  = "awaiting_question"
	StateAwaitingToggleID  = "awaiting_toggle_id"
	StateAwaitingBroadcast = "awaiting_broadcast"
)

type HandlerManager struct {
	Config          *config.Config
	DB              *gorm.DB
	Battles         *battle.Store
	UserRepo        *repositories.UserRepository
	QuestionRepo    *repositories.QuestionRepository
	BattleRepo      *repositories.BattleRepository
	StatsRepo       *repositories.StatsRepository
	AchievementRepo *repositories.AchievementRepository

	adminStates sync.Map // telegramID -> state string

	soloSessions   map[int64]*SoloQuizSession
	soloSessionsMu sync.RWMutex
}

func NewHandlerManager(
	cfg *config.Config,
	db *gorm.DB,
	battles *battle.Store,
	userRepo *repositories.UserRepository,
	questionRepo *repositories.QuestionRepository,
	battleRepo *repositories.BattleRepository,
	statsRepo *repositories.StatsRepository,
	achievementRepo *repositories.AchievementRepository,
) *HandlerManager {
	return &HandlerManager{
		Config:          cfg,
		DB:              db,
		Battles:         battles,
		UserRepo:        userRepo,
		QuestionRepo:    questionRepo,
		BattleRepo:      battleRepo,
		StatsRepo:       statsRepo,
		AchievementRepo: achievementRepo,
		soloSessions:    make(map[int64]*SoloQuizSession),
	}
}

// GetAdminState returns the admin's pending input state, if any.
func (h *HandlerManager) GetAdminState(telegramID int64) (string, bool) {
	v, ok := h.adminStates.Load(telegramID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (h *HandlerManager) SetAdminState(telegramID int64, state string) {
	h.adminStates.Store(telegramID, state)
}

func (h *HandlerManager) ClearAdminState(telegramID int64) {
	h.adminStates.Delete(telegramID)
}
