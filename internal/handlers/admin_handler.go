package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/internal/security"
	"github.com/Tohidkhan6332/quizbot/pkg/errors"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
)

// ShowAdminMenu opens the admin panel. Non-admins are turned away.
func (h *HandlerManager) ShowAdminMenu(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		bot.SendMessage(userID, "⛔ This area is for admins only.", nil)
		return
	}
	bot.SendMessage(userID, "🛠 *Admin Panel*", AdminMenuKeyboard())
}

// HandleAdminStats renders the bot-wide overview.
func (h *HandlerManager) HandleAdminStats(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		return
	}

	users, err := h.UserRepo.CountUsers()
	if err != nil {
		logger.Error("failed to count users", "error", err)
		bot.SendMessage(userID, "❌ Couldn't load stats.", AdminMenuKeyboard())
		return
	}
	totalQ, activeQ, err := h.QuestionRepo.CountQuestions()
	if err != nil {
		logger.Error("failed to count questions", "error", err)
		bot.SendMessage(userID, "❌ Couldn't load stats.", AdminMenuKeyboard())
		return
	}
	battles, _ := h.BattleRepo.CountBattles()
	points, _ := h.StatsRepo.TotalPoints()

	text := fmt.Sprintf("📈 *Bot Stats*\n\n"+
		"👥 Users: %d\n"+
		"❓ Questions: %d (%d active)\n"+
		"⚔️ Battles played: %d\n"+
		"🎮 Live battles: %d\n"+
		"🏅 Points awarded: %d",
		users, totalQ, activeQ, battles, h.Battles.Len(), points)
	bot.SendMessage(userID, text, AdminMenuKeyboard())
}

// StartAddQuestion puts the admin into question-entry mode.
func (h *HandlerManager) StartAddQuestion(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		return
	}
	h.SetAdminState(userID, StateAwaitingQuestion)
	bot.SendMessage(userID, "➕ Send the question in this format:\n\n"+
		"`Category|Question text|Option 1|Option 2|Option 3|Option 4|CorrectNumber`\n\n"+
		"CorrectNumber is 1-4. Send /cancel to abort.", nil)
}

// StartToggleQuestion puts the admin into toggle mode.
func (h *HandlerManager) StartToggleQuestion(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		return
	}
	h.SetAdminState(userID, StateAwaitingToggleID)
	bot.SendMessage(userID, "🔄 Send the question ID to enable/disable. Send /cancel to abort.", nil)
}

// StartBroadcast puts the admin into broadcast mode.
func (h *HandlerManager) StartBroadcast(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		return
	}
	h.SetAdminState(userID, StateAwaitingBroadcast)
	bot.SendMessage(userID, "📢 Send the message to broadcast to every user. Send /cancel to abort.", nil)
}

// HandleAdminInput consumes one plain message while an admin flow is
// pending. Returns false when no flow is pending so the caller can fall
// through to normal routing.
func (h *HandlerManager) HandleAdminInput(userID int64, user *models.User, text string, bot BotInterface) bool {
	state, ok := h.GetAdminState(userID)
	if !ok || !user.IsAdmin {
		return false
	}

	if strings.TrimSpace(text) == "/cancel" {
		h.ClearAdminState(userID)
		bot.SendMessage(userID, "Canceled.", AdminMenuKeyboard())
		return true
	}

	switch state {
	case StateAwaitingQuestion:
		h.handleAddQuestionInput(userID, text, bot)
	case StateAwaitingToggleID:
		h.handleToggleInput(userID, text, bot)
	case StateAwaitingBroadcast:
		h.handleBroadcastInput(userID, text, bot)
	default:
		h.ClearAdminState(userID)
		return false
	}
	return true
}

// ParseQuestionLine parses the pipe-delimited admin submission into a
// question. All fields are sanitized, the correct number is 1-based on
// the wire and stored zero-based.
func ParseQuestionLine(line string) (*models.Question, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 7 {
		return nil, errors.New(errors.ErrCodeValidation, "expected 7 fields separated by |")
	}

	for i := range parts {
		parts[i] = security.SanitizeUserInput(parts[i])
		if parts[i] == "" {
			return nil, errors.New(errors.ErrCodeValidation, "empty field in question")
		}
	}

	correct, err := strconv.Atoi(parts[6])
	if err != nil || correct < 1 || correct > models.OptionsPerQuestion {
		return nil, errors.New(errors.ErrCodeValidation, "correct number must be 1-4")
	}

	category := strings.ToLower(parts[0])
	if _, ok := models.CategoryTitles[category]; !ok {
		return nil, errors.New(errors.ErrCodeValidation, "unknown category: "+category)
	}

	return &models.Question{
		Category:      category,
		QuestionText:  parts[1],
		Option1:       parts[2],
		Option2:       parts[3],
		Option3:       parts[4],
		Option4:       parts[5],
		CorrectOption: correct - 1,
		IsActive:      true,
	}, nil
}

func (h *HandlerManager) handleAddQuestionInput(userID int64, text string, bot BotInterface) {
	question, err := ParseQuestionLine(text)
	if err != nil {
		bot.SendMessage(userID, "❌ "+err.Error()+"\n\nTry again or send /cancel.", nil)
		return
	}

	if err := h.QuestionRepo.CreateQuestion(question); err != nil {
		logger.Error("failed to create question", "error", err)
		bot.SendMessage(userID, "❌ Couldn't save the question, try again.", nil)
		return
	}

	h.ClearAdminState(userID)
	bot.SendMessage(userID, fmt.Sprintf("✅ Question #%d added to %s.", question.ID, models.CategoryTitles[question.Category]), AdminMenuKeyboard())
	logger.Info("question added", "question_id", question.ID, "category", question.Category)
}

func (h *HandlerManager) handleToggleInput(userID int64, text string, bot BotInterface) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || id <= 0 {
		bot.SendMessage(userID, "❌ Send a numeric question ID, or /cancel.", nil)
		return
	}

	active, err := h.QuestionRepo.ToggleActive(uint(id))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			bot.SendMessage(userID, "❌ No question with that ID.", nil)
			return
		}
		logger.Error("failed to toggle question", "question_id", id, "error", err)
		bot.SendMessage(userID, "❌ Couldn't toggle the question, try again.", nil)
		return
	}

	h.ClearAdminState(userID)
	state := "disabled"
	if active {
		state = "enabled"
	}
	bot.SendMessage(userID, fmt.Sprintf("✅ Question #%d is now %s.", id, state), AdminMenuKeyboard())
}

func (h *HandlerManager) handleBroadcastInput(userID int64, text string, bot BotInterface) {
	h.ClearAdminState(userID)
	sent, failed := h.BroadcastMessage(security.SanitizeString(text), bot)
	bot.SendMessage(userID, fmt.Sprintf("📢 Broadcast done: %d delivered, %d failed.", sent, failed), AdminMenuKeyboard())
}

// BroadcastMessage sends text to every registered user. Also used by
// the ops API.
func (h *HandlerManager) BroadcastMessage(text string, bot BotInterface) (sent, failed int) {
	ids, err := h.UserRepo.GetAllTelegramIDs()
	if err != nil {
		logger.Error("failed to list broadcast targets", "error", err)
		return 0, 0
	}

	for _, chatID := range ids {
		if bot.SendMessage(chatID, "📢 "+text, nil) == 0 {
			failed++
		} else {
			sent++
		}
	}
	logger.Info("broadcast sent", "delivered", sent, "failed", failed)
	return sent, failed
}

// HandleAPIToken issues an ops API token for the admin via /apitoken.
func (h *HandlerManager) HandleAPIToken(userID int64, user *models.User, bot BotInterface) {
	if !user.IsAdmin {
		bot.SendMessage(userID, "⛔ This command is for admins only.", nil)
		return
	}

	token, err := security.GenerateAPIToken(user.ID, user.TelegramID, true, h.Config.JWTSecret)
	if err != nil {
		logger.Error("failed to issue api token", "user_id", user.ID, "error", err)
		bot.SendMessage(userID, "❌ Couldn't issue a token, try again.", nil)
		return
	}

	bot.SendMessage(userID, "🔑 Your ops API token (valid 24h):\n\n`"+token+"`", nil)
}
