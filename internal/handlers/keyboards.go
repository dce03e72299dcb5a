package handlers

import (
	"fmt"
	"strconv"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenuKeyboard is the top-level menu shown after /start.
func MainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start Quiz", "menu:quiz"),
			tgbotapi.NewInlineKeyboardButtonData("⚔️ Battle Mode", "menu:battle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My Stats", "menu:stats"),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", "menu:leaderboard"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎖 Achievements", "menu:achievements"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Help", "menu:help"),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Admin Panel", "admin:menu"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// CategoryKeyboard lists quiz categories plus a mixed option.
func CategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton

	for _, category := range models.Categories {
		btn := tgbotapi.NewInlineKeyboardButtonData(models.CategoryTitles[category], "quiz:cat:"+category)
		currentRow = append(currentRow, btn)
		if len(currentRow) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
			currentRow = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎲 Mixed", "quiz:cat:mixed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "menu:main"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BattleMenuKeyboard offers the two ways into a battle.
func BattleMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔗 Challenge a Friend", "battle:create"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎲 Random Opponent", "battle:queue"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "menu:main"),
		),
	)
}

// BattleInviteKeyboard is what the challenged user sees.
func BattleInviteKeyboard(battleID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Accept", "battle:accept:"+battleID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Decline", "battle:decline:"+battleID),
		),
	)
}

// BattleCancelKeyboard lets the creator withdraw a pending challenge.
func BattleCancelKeyboard(battleID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Cancel Challenge", "battle:cancel:"+battleID),
		),
	)
}

// BattleAnswerKeyboard renders one button per shuffled option. The round
// is baked into every callback so a press always names the round it was
// issued for.
func BattleAnswerKeyboard(battleID string, round int, options []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range options {
		data := fmt.Sprintf("battle:ans:%s:%d:%d", battleID, round, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// QuizAnswerKeyboard renders the solo quiz options, question index baked
// into the callback the same way battles pin rounds.
func QuizAnswerKeyboard(questionIdx int, options []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range options {
		data := "quiz:ans:" + strconv.Itoa(questionIdx) + ":" + strconv.Itoa(i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛑 Quit Quiz", "quiz:quit"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// LeaveQueueKeyboard lets a queued user back out of matchmaking.
func LeaveQueueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Leave Queue", "battle:leave"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Main Menu", "menu:main"),
		),
	)
}

// AdminMenuKeyboard is the admin panel.
func AdminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Question", "admin:addq"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Toggle Question", "admin:toggleq"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Bot Stats", "admin:stats"),
			tgbotapi.NewInlineKeyboardButtonData("📢 Broadcast", "admin:broadcast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "menu:main"),
		),
	)
}

// BackToMainKeyboard is a single back button.
func BackToMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Main Menu", "menu:main"),
		),
	)
}

// PlayAgainKeyboard closes out a finished quiz or battle.
func PlayAgainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Play Again", "menu:quiz"),
			tgbotapi.NewInlineKeyboardButtonData("⚔️ Battle", "menu:battle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Main Menu", "menu:main"),
		),
	)
}
