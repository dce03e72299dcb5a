package handlers

import (
	"fmt"
	"sync"
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/battle"
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
)

// QuestionsPerQuiz is the length of a solo run.
const QuestionsPerQuiz = 10

// SoloQuizSession holds in-memory state for one user's solo run. One
// session per user; starting a new quiz replaces any unfinished one.
type SoloQuizSession struct {
	Category  string
	Questions []models.Question
	Current   int
	Score     int
	Correct   int
	Wrong     int
	Streak    int
	Best      int
	StartedAt time.Time

	correctIdx map[int]int
	options    map[int][]string

	mu sync.Mutex
}

func (h *HandlerManager) getSoloSession(telegramID int64) (*SoloQuizSession, bool) {
	h.soloSessionsMu.RLock()
	session, ok := h.soloSessions[telegramID]
	h.soloSessionsMu.RUnlock()
	return session, ok
}

func (h *HandlerManager) putSoloSession(telegramID int64, session *SoloQuizSession) {
	h.soloSessionsMu.Lock()
	h.soloSessions[telegramID] = session
	h.soloSessionsMu.Unlock()
}

func (h *HandlerManager) dropSoloSession(telegramID int64) {
	h.soloSessionsMu.Lock()
	delete(h.soloSessions, telegramID)
	h.soloSessionsMu.Unlock()
}

// ShowCategoryMenu opens the solo quiz category picker.
func (h *HandlerManager) ShowCategoryMenu(userID int64, bot BotInterface) {
	text := fmt.Sprintf("🎯 *Solo Quiz*\n\nPick a category. %d questions, %d points each. Keep a streak going for bragging rights!",
		QuestionsPerQuiz, battle.PointsPerCorrect)
	bot.SendMessage(userID, text, CategoryKeyboard())
}

// StartSoloQuiz draws the question set and delivers the first question.
// category "mixed" draws across all categories.
func (h *HandlerManager) StartSoloQuiz(userID int64, user *models.User, category string, bot BotInterface) {
	var (
		questions []models.Question
		err       error
	)
	if category == "mixed" {
		questions, err = h.QuestionRepo.GetRandomActiveQuestions(QuestionsPerQuiz)
	} else {
		questions, err = h.QuestionRepo.GetRandomActiveByCategory(category, QuestionsPerQuiz)
	}
	if err != nil {
		logger.Error("failed to draw quiz questions", "category", category, "error", err)
		bot.SendMessage(userID, "❌ No questions available in that category yet.", CategoryKeyboard())
		return
	}

	session := &SoloQuizSession{
		Category:   category,
		Questions:  questions,
		StartedAt:  time.Now(),
		correctIdx: make(map[int]int),
		options:    make(map[int][]string),
	}
	h.putSoloSession(userID, session)

	logger.Info("solo quiz started", "user", userID, "category", category, "questions", len(questions))
	h.sendSoloQuestion(userID, session, bot)
}

func (h *HandlerManager) sendSoloQuestion(userID int64, session *SoloQuizSession, bot BotInterface) {
	session.mu.Lock()
	idx := session.Current
	question := session.Questions[idx]

	shuffled, correct := battle.ShuffleOptions(question.Options(), question.CorrectOption)
	session.correctIdx[idx] = correct
	session.options[idx] = shuffled

	streak := session.Streak
	total := len(session.Questions)
	session.mu.Unlock()

	text := fmt.Sprintf("❓ *Question %d/%d*", idx+1, total)
	if streak >= 3 {
		text += fmt.Sprintf("  🔥 streak: %d", streak)
	}
	text += "\n\n" + question.QuestionText
	bot.SendMessage(userID, text, QuizAnswerKeyboard(idx, shuffled))
}

// HandleSoloAnswer adjudicates one solo answer against the pinned
// shuffle for that question index, then advances or finishes. The
// answered prompt is edited in place so its buttons go dead.
func (h *HandlerManager) HandleSoloAnswer(userID int64, user *models.User, callbackID string, messageID int, questionIdx, selected int, bot BotInterface) {
	session, ok := h.getSoloSession(userID)
	if !ok {
		bot.AnswerCallback(callbackID, "No quiz in progress. Start a new one!")
		return
	}

	session.mu.Lock()
	correct, delivered := session.correctIdx[questionIdx]
	if !delivered || questionIdx != session.Current {
		session.mu.Unlock()
		bot.AnswerCallback(callbackID, "That question is no longer open.")
		return
	}

	isCorrect := selected == correct
	correctText := session.options[questionIdx][correct]
	qText := session.Questions[questionIdx].QuestionText
	total := len(session.Questions)
	if isCorrect {
		session.Score += battle.PointsPerCorrect
		session.Correct++
		session.Streak++
		if session.Streak > session.Best {
			session.Best = session.Streak
		}
	} else {
		session.Wrong++
		session.Streak = 0
	}
	streak := session.Streak
	session.Current++
	finished := session.Current >= len(session.Questions)
	session.mu.Unlock()

	var feedback string
	if isCorrect {
		feedback = fmt.Sprintf("✅ Correct! +%d points", battle.PointsPerCorrect)
	} else {
		feedback = "❌ Wrong! Answer: " + correctText
	}
	bot.AnswerCallback(callbackID, feedback)
	bot.EditMessage(userID, messageID, fmt.Sprintf("❓ *Question %d/%d*\n\n%s\n\n%s", questionIdx+1, total, qText, feedback), nil)

	if err := h.StatsRepo.ApplyAnswer(user.ID, isCorrect, streak); err != nil {
		logger.Error("failed to update answer stats", "user_id", user.ID, "error", err)
	}

	if finished {
		h.finishSoloQuiz(userID, user, session, bot)
		return
	}
	h.sendSoloQuestion(userID, session, bot)
}

// QuitSoloQuiz abandons the run. Nothing is persisted for a quit.
func (h *HandlerManager) QuitSoloQuiz(userID int64, bot BotInterface) {
	if _, ok := h.getSoloSession(userID); !ok {
		bot.SendMessage(userID, "No quiz in progress.", BackToMainKeyboard())
		return
	}
	h.dropSoloSession(userID)
	bot.SendMessage(userID, "🛑 Quiz abandoned. Come back when you're ready!", BackToMainKeyboard())
}

func (h *HandlerManager) finishSoloQuiz(userID int64, user *models.User, session *SoloQuizSession, bot BotInterface) {
	h.dropSoloSession(userID)

	session.mu.Lock()
	score := session.Score
	correct := session.Correct
	wrong := session.Wrong
	best := session.Best
	category := session.Category
	elapsed := int(time.Since(session.StartedAt).Seconds())
	total := len(session.Questions)
	session.mu.Unlock()

	text := fmt.Sprintf("🏁 *Quiz complete!*\n\nScore: %d points\nCorrect: %d/%d\nBest streak: %d\nTime: %ds",
		score, correct, total, best, elapsed)
	bot.SendMessage(userID, text, PlayAgainKeyboard())

	if score > 0 {
		if err := h.StatsRepo.AddScore(user.ID, score); err != nil {
			logger.Error("failed to credit quiz score", "user_id", user.ID, "error", err)
		}
	}
	totalQuizzes, err := h.StatsRepo.IncrementQuizzes(user.ID)
	if err != nil {
		logger.Error("failed to count quiz", "user_id", user.ID, "error", err)
	}

	if err := h.StatsRepo.SaveQuizResult(&models.QuizResult{
		UserID:       user.ID,
		Category:     category,
		Score:        score,
		CorrectCount: correct,
		WrongCount:   wrong,
		BestStreak:   best,
		TimeTakenSec: elapsed,
	}); err != nil {
		logger.Error("failed to save quiz result", "user_id", user.ID, "error", err)
	}

	logger.Info("solo quiz finished", "user", userID, "score", score, "correct", correct)

	h.checkQuizAchievements(user.ID, userID, totalQuizzes, best, bot)
}
