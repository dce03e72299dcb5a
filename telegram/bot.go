package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/battle"
	"github.com/Tohidkhan6332/quizbot/internal/config"
	"github.com/Tohidkhan6332/quizbot/internal/handlers"
	"github.com/Tohidkhan6332/quizbot/internal/middleware"
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/internal/repositories"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

const workerCount = 10

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	db       *gorm.DB
	handlers *handlers.HandlerManager
	limiter  *middleware.RateLimiter

	// Worker pool; updates are hashed by user id so one user's updates
	// are always processed in order.
	workerChans []chan tgbotapi.Update
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	userRepo := repositories.NewUserRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	battleRepo := repositories.NewBattleRepository(db)
	statsRepo := repositories.NewStatsRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)

	handlerMgr := handlers.NewHandlerManager(
		cfg, db, battle.NewStore(),
		userRepo, questionRepo, battleRepo, statsRepo, achievementRepo,
	)

	bot := &Bot{
		api:         api,
		config:      cfg,
		db:          db,
		handlers:    handlerMgr,
		limiter:     middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute),
		workerChans: make([]chan tgbotapi.Update, workerCount),
	}

	for i := 0; i < workerCount; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	go bot.startUpdateListener()

	return bot, nil
}

// Handlers exposes the handler manager to the ops API server.
func (b *Bot) Handlers() *handlers.HandlerManager {
	return b.handlers
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			var userID int64
			if update.Message != nil {
				userID = update.Message.From.ID
			} else if update.CallbackQuery != nil {
				userID = update.CallbackQuery.From.ID
			}

			if userID != 0 {
				// Hashed dispatch keeps per-user ordering.
				workerIdx := userID % int64(len(b.workerChans))
				if workerIdx < 0 {
					workerIdx = -workerIdx
				}
				b.workerChans[workerIdx] <- update
			} else {
				go b.handleUpdate(update)
			}
		}

		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startWorker(updates <-chan tgbotapi.Update) {
	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic in update handler", "panic", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// resolveUser registers or refreshes the sender and applies the per-user
// rate limit. Returns nil when the update should be dropped.
func (b *Bot) resolveUser(from *tgbotapi.User, chatID int64) *models.User {
	if !b.limiter.CheckUserLimit(from.ID) {
		logger.Warn("User rate limited", "user_id", from.ID)
		return nil
	}

	user, err := b.handlers.UserRepo.GetOrCreateUser(from.ID, from.UserName, from.FirstName)
	if err != nil {
		logger.Error("Failed to resolve user", "user_id", from.ID, "error", err)
		b.SendMessage(chatID, "❌ Something went wrong, please try again.", nil)
		return nil
	}

	if b.config.SuperAdminTgID != 0 && user.TelegramID == b.config.SuperAdminTgID && !user.IsAdmin {
		user.IsAdmin = true
		b.db.Model(user).Update("is_admin", true)
	}

	if err := b.handlers.UserRepo.UpdateLastActivity(user.ID); err != nil {
		logger.Debug("Failed to touch activity", "user_id", user.ID, "error", err)
	}

	return user
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	user := b.resolveUser(message.From, message.Chat.ID)
	if user == nil {
		return
	}

	// Pending admin flows eat the next plain message.
	if !message.IsCommand() {
		if b.handlers.HandleAdminInput(message.From.ID, user, message.Text, b) {
			return
		}
	}

	if message.IsCommand() {
		b.handleCommand(message, user)
		return
	}

	b.handlers.ShowMainMenu(message.From.ID, user, b)
}

func (b *Bot) handleCommand(message *tgbotapi.Message, user *models.User) {
	userID := message.From.ID

	switch message.Command() {
	case "start":
		b.handlers.HandleStart(userID, user, message.CommandArguments(), b)
	case "quiz":
		b.handlers.ShowCategoryMenu(userID, b)
	case "battle":
		b.handlers.ShowBattleMenu(userID, b)
	case "stats":
		b.handlers.ShowStats(userID, user, b)
	case "leaderboard":
		b.handlers.ShowLeaderboard(userID, b)
	case "achievements":
		b.handlers.ShowAchievements(userID, user, b)
	case "help":
		b.handlers.ShowHelp(userID, b)
	case "admin":
		b.handlers.ShowAdminMenu(userID, user, b)
	case "apitoken":
		b.handlers.HandleAPIToken(userID, user, b)
	case "cancel":
		b.handlers.ClearAdminState(userID)
		b.handlers.ShowMainMenu(userID, user, b)
	default:
		b.SendMessage(userID, "Unknown command. Try /help.", nil)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.AnswerCallback(query.ID, "")
		return
	}

	user := b.resolveUser(query.From, query.Message.Chat.ID)
	if user == nil {
		b.AnswerCallback(query.ID, "")
		return
	}
	userID := query.From.ID

	event, err := ParseCallback(query.Data)
	if err != nil {
		logger.Warn("Malformed callback payload", "data", query.Data, "user_id", userID)
		b.AnswerCallback(query.ID, "")
		return
	}

	switch event.Kind {
	case CallbackMenu:
		b.AnswerCallback(query.ID, "")
		b.handleMenuAction(userID, user, event.Action)

	case CallbackQuizCategory:
		b.AnswerCallback(query.ID, "")
		b.handlers.StartSoloQuiz(userID, user, event.Category, b)

	case CallbackQuizAnswer:
		b.handlers.HandleSoloAnswer(userID, user, query.ID, query.Message.MessageID, event.Question, event.Option, b)

	case CallbackQuizQuit:
		b.AnswerCallback(query.ID, "")
		b.handlers.QuitSoloQuiz(userID, b)

	case CallbackBattleCreate:
		b.AnswerCallback(query.ID, "")
		b.handlers.CreateBattleChallenge(userID, user, b)

	case CallbackBattleQueue:
		b.AnswerCallback(query.ID, "")
		b.handlers.JoinBattleQueue(userID, user, b)

	case CallbackBattleLeave:
		b.AnswerCallback(query.ID, "")
		b.handlers.LeaveBattleQueue(userID, user, b)

	case CallbackBattleAccept:
		b.AnswerCallback(query.ID, "")
		b.handlers.AcceptBattle(userID, user, event.BattleID, b)

	case CallbackBattleDecline:
		b.AnswerCallback(query.ID, "")
		b.handlers.DeclineBattle(userID, event.BattleID, b)

	case CallbackBattleCancel:
		b.AnswerCallback(query.ID, "")
		b.handlers.CancelBattle(userID, event.BattleID, b)

	case CallbackBattleAnswer:
		b.handlers.HandleBattleAnswer(userID, query.ID, query.Message.MessageID, event.BattleID, event.Round, event.Option, b)

	case CallbackAdmin:
		b.AnswerCallback(query.ID, "")
		b.handleAdminAction(userID, user, event.Action)

	default:
		b.AnswerCallback(query.ID, "")
	}
}

func (b *Bot) handleMenuAction(userID int64, user *models.User, action string) {
	switch action {
	case "main":
		b.handlers.ShowMainMenu(userID, user, b)
	case "quiz":
		b.handlers.ShowCategoryMenu(userID, b)
	case "battle":
		b.handlers.ShowBattleMenu(userID, b)
	case "stats":
		b.handlers.ShowStats(userID, user, b)
	case "leaderboard":
		b.handlers.ShowLeaderboard(userID, b)
	case "achievements":
		b.handlers.ShowAchievements(userID, user, b)
	case "help":
		b.handlers.ShowHelp(userID, b)
	}
}

func (b *Bot) handleAdminAction(userID int64, user *models.User, action string) {
	switch action {
	case "menu":
		b.handlers.ShowAdminMenu(userID, user, b)
	case "stats":
		b.handlers.HandleAdminStats(userID, user, b)
	case "addq":
		b.handlers.StartAddQuestion(userID, user, b)
	case "toggleq":
		b.handlers.StartToggleQuestion(userID, user, b)
	case "broadcast":
		b.handlers.StartBroadcast(userID, user, b)
	}
}

func (b *Bot) sendMessage(chatID int64, text string, keyboard interface{}) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch kb := keyboard.(type) {
	case tgbotapi.ReplyKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.InlineKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.ReplyKeyboardRemove:
		msg.ReplyMarkup = kb
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		sentMsg, err := b.api.Send(msg)
		if err != nil {
			logger.Error("Failed to send message", "error", err, "chat_id", chatID, "attempt", i+1)

			// Only network errors are worth a retry.
			if strings.Contains(err.Error(), "connection reset") ||
				strings.Contains(err.Error(), "timeout") ||
				strings.Contains(err.Error(), "network is unreachable") {
				time.Sleep(time.Duration(i+1) * time.Second)
				continue
			}
			return 0
		}
		return sentMsg.MessageID
	}
	return 0
}

func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) int {
	return b.sendMessage(chatID, text, keyboard)
}

func (b *Bot) EditMessage(chatID int64, messageID int, text string, keyboard interface{}) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if keyboard != nil {
		if kb, ok := keyboard.(tgbotapi.InlineKeyboardMarkup); ok {
			msg.ReplyMarkup = &kb
		}
	}

	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to edit message", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}

func (b *Bot) AnswerCallback(queryID string, text string) {
	callback := tgbotapi.NewCallback(queryID, text)
	if _, err := b.api.Request(callback); err != nil {
		logger.Error("Failed to answer callback query", "error", err, "query_id", queryID)
	}
}

func (b *Bot) Username() string {
	return b.api.Self.UserName
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	logger.Info("Bot stopped receiving updates")
}
