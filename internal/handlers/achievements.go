package handlers

import (
	"strings"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
)

// AchievementDef is a catalog entry. The catalog is static code, only
// grants live in the database.
type AchievementDef struct {
	ID          string
	Icon        string
	Title       string
	Description string
}

var achievementCatalog = []AchievementDef{
	{models.AchievementQuizStarter, "🎓", "Quiz Starter", "Complete your first quiz"},
	{models.AchievementStreak3, "🔥", "On Fire", "Answer 3 questions correctly in a row"},
	{models.AchievementStreak10, "⚡", "Unstoppable", "Answer 10 questions correctly in a row"},
	{models.AchievementBattleWinner, "⚔️", "Gladiator", "Win a battle"},
}

func achievementByID(id string) (AchievementDef, bool) {
	for _, def := range achievementCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDef{}, false
}

// grantAchievement awards once and announces only a fresh grant.
func (h *HandlerManager) grantAchievement(userID uint, telegramID int64, achievementID string, bot BotInterface) {
	granted, err := h.AchievementRepo.Grant(userID, achievementID)
	if err != nil {
		logger.Error("failed to grant achievement", "user_id", userID, "achievement", achievementID, "error", err)
		return
	}
	if !granted {
		return
	}

	def, ok := achievementByID(achievementID)
	if !ok {
		return
	}
	bot.SendMessage(telegramID, "🎖 *Achievement unlocked!*\n\n"+def.Icon+" "+def.Title+"\n_"+def.Description+"_", nil)
	logger.Info("achievement granted", "user_id", userID, "achievement", achievementID)
}

// checkQuizAchievements evaluates the solo quiz milestones after a
// finished run.
func (h *HandlerManager) checkQuizAchievements(userID uint, telegramID int64, totalQuizzes, bestStreak int, bot BotInterface) {
	for _, id := range EvaluateQuizAchievements(totalQuizzes, bestStreak) {
		h.grantAchievement(userID, telegramID, id, bot)
	}
}

// EvaluateQuizAchievements returns the achievement ids earned by a quiz
// run with the given lifetime quiz count and best streak. Pure so the
// thresholds are testable without a database.
func EvaluateQuizAchievements(totalQuizzes, bestStreak int) []string {
	var earned []string
	if totalQuizzes >= 1 {
		earned = append(earned, models.AchievementQuizStarter)
	}
	if bestStreak >= 3 {
		earned = append(earned, models.AchievementStreak3)
	}
	if bestStreak >= 10 {
		earned = append(earned, models.AchievementStreak10)
	}
	return earned
}

// ShowAchievements renders the full catalog with earned markers.
func (h *HandlerManager) ShowAchievements(userID int64, user *models.User, bot BotInterface) {
	earned, err := h.AchievementRepo.ListByUser(user.ID)
	if err != nil {
		logger.Error("failed to list achievements", "user_id", user.ID, "error", err)
		bot.SendMessage(userID, "❌ Couldn't load your achievements right now.", BackToMainKeyboard())
		return
	}

	have := make(map[string]bool, len(earned))
	for _, a := range earned {
		have[a.AchievementID] = true
	}

	var b strings.Builder
	b.WriteString("🎖 *Achievements*\n\n")
	for _, def := range achievementCatalog {
		if have[def.ID] {
			b.WriteString("✅ ")
		} else {
			b.WriteString("🔒 ")
		}
		b.WriteString(def.Icon + " *" + def.Title + "*\n_" + def.Description + "_\n\n")
	}
	bot.SendMessage(userID, b.String(), BackToMainKeyboard())
}
