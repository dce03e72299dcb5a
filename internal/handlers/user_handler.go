package handlers

import (
	"fmt"
	"strings"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
)

// HandleStart greets the user and routes battle deep links. A /start
// payload of "battle_<id>" is an invite link being opened; the invitee
// gets accept and decline buttons, nothing binds until they choose.
func (h *HandlerManager) HandleStart(userID int64, user *models.User, payload string, bot BotInterface) {
	if strings.HasPrefix(payload, "battle_") {
		battleID := strings.TrimPrefix(payload, "battle_")
		h.ShowBattleInvite(userID, battleID, bot)
		return
	}

	text := fmt.Sprintf("👋 Welcome, %s!\n\n"+
		"🧠 Test your knowledge in solo quizzes or challenge your friends to head-to-head battles.\n\n"+
		"What would you like to do?", user.FirstName)
	bot.SendMessage(userID, text, MainMenuKeyboard(user.IsAdmin))
}

// ShowMainMenu re-renders the top-level menu.
func (h *HandlerManager) ShowMainMenu(userID int64, user *models.User, bot BotInterface) {
	bot.SendMessage(userID, "🏠 *Main Menu*\n\nWhat would you like to do?", MainMenuKeyboard(user.IsAdmin))
}

// ShowStats renders the caller's lifetime statistics.
func (h *HandlerManager) ShowStats(userID int64, user *models.User, bot BotInterface) {
	stats, err := h.StatsRepo.GetOrCreateStats(user.ID)
	if err != nil {
		logger.Error("failed to load stats", "user_id", user.ID, "error", err)
		bot.SendMessage(userID, "❌ Couldn't load your stats right now.", BackToMainKeyboard())
		return
	}

	accuracy := 0.0
	answered := stats.CorrectAnswers + stats.WrongAnswers
	if answered > 0 {
		accuracy = float64(stats.CorrectAnswers) / float64(answered) * 100
	}

	text := fmt.Sprintf("📊 *Stats for %s*\n\n"+
		"🏅 Total score: %d\n"+
		"🎯 Quizzes completed: %d\n"+
		"✅ Correct answers: %d\n"+
		"❌ Wrong answers: %d\n"+
		"🎪 Accuracy: %.1f%%\n"+
		"🔥 Current streak: %d\n"+
		"⚡ Best streak: %d\n\n"+
		"⚔️ Battles: %d played, %d won",
		user.DisplayName(),
		stats.TotalScore,
		stats.TotalQuizzes,
		stats.CorrectAnswers,
		stats.WrongAnswers,
		accuracy,
		stats.CurrentStreak,
		stats.HighestStreak,
		stats.BattlesPlayed,
		stats.BattlesWon,
	)
	bot.SendMessage(userID, text, BackToMainKeyboard())
}

// ShowLeaderboard renders the top ten by lifetime score.
func (h *HandlerManager) ShowLeaderboard(userID int64, bot BotInterface) {
	entries, err := h.StatsRepo.GetLeaderboard(10)
	if err != nil {
		logger.Error("failed to load leaderboard", "error", err)
		bot.SendMessage(userID, "❌ Couldn't load the leaderboard right now.", BackToMainKeyboard())
		return
	}
	if len(entries) == 0 {
		bot.SendMessage(userID, "🏆 The leaderboard is empty. Be the first to score!", BackToMainKeyboard())
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	b.WriteString("🏆 *Leaderboard*\n\n")
	for i, entry := range entries {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		b.WriteString(fmt.Sprintf("%s %s - %d pts\n", rank, entry.User.DisplayName(), entry.TotalScore))
	}
	bot.SendMessage(userID, b.String(), BackToMainKeyboard())
}

// ShowHelp explains the game modes and commands.
func (h *HandlerManager) ShowHelp(userID int64, bot BotInterface) {
	text := "ℹ️ *How to play*\n\n" +
		"🎯 *Solo Quiz*: 10 questions, 10 points each. Streaks earn achievements.\n\n" +
		"⚔️ *Battle Mode*: challenge a friend with a link or queue for a random opponent. " +
		"5 questions, first to the highest score wins.\n\n" +
		"*Commands*\n" +
		"/start - main menu\n" +
		"/quiz - start a solo quiz\n" +
		"/battle - battle mode\n" +
		"/stats - your statistics\n" +
		"/leaderboard - top players"
	bot.SendMessage(userID, text, BackToMainKeyboard())
}
