package handlers

import (
	"fmt"
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/battle"
	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
)

// ShowBattleMenu presents the two entry points into a battle.
func (h *HandlerManager) ShowBattleMenu(userID int64, bot BotInterface) {
	text := "⚔️ *Battle Mode*\n\n" +
		fmt.Sprintf("Go head-to-head over %d questions. %d points per correct answer. Highest score wins!", battle.QuestionsPerBattle, battle.PointsPerCorrect)
	bot.SendMessage(userID, text, BattleMenuKeyboard())
}

// CreateBattleChallenge freezes a question set, opens a waiting session
// and hands the creator a share link. The challenge self-destructs if
// nobody accepts before the invite TTL.
func (h *HandlerManager) CreateBattleChallenge(userID int64, user *models.User, bot BotInterface) {
	questions, err := h.QuestionRepo.GetRandomActiveQuestions(battle.QuestionsPerBattle)
	if err != nil {
		logger.Error("failed to draw battle questions", "error", err)
		bot.SendMessage(userID, "❌ Not enough questions available for a battle right now.", BackToMainKeyboard())
		return
	}

	session := h.Battles.Create(userID, user.DisplayName(), questions)
	battleID := session.ID

	session.ExpiryTimer = time.AfterFunc(h.Config.GetBattleInviteTTL(), func() {
		h.expireBattle(battleID, bot)
	})

	link := fmt.Sprintf("https://t.me/%s?start=battle_%s", bot.Username(), battleID)
	text := "⚔️ *Challenge created!*\n\n" +
		"Send this link to a friend:\n" + link + "\n\n" +
		fmt.Sprintf("The challenge expires in %d minutes.", h.Config.BattleInviteTTLMinutes)
	bot.SendMessage(userID, text, BattleCancelKeyboard(battleID))

	logger.Info("battle challenge created", "battle_id", battleID, "creator", userID)
}

// expireBattle is the acceptance reaper. It only fires on sessions still
// waiting; anything accepted or canceled in the meantime is left alone.
// The status flip is the tombstone: it happens under the session lock,
// so an accept racing the map delete resolves to not-found instead of
// binding into a session about to vanish.
func (h *HandlerManager) expireBattle(battleID string, bot BotInterface) {
	var creatorID int64

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if s.Status != battle.StatusWaiting {
			return battle.ErrAlreadyActive
		}
		s.Status = battle.StatusFinished
		creatorID = s.CreatorID
		return nil
	})
	if err != nil {
		return
	}

	h.Battles.Delete(battleID)
	bot.SendMessage(creatorID, "⌛ Your battle challenge expired with no takers.", BackToMainKeyboard())
	logger.Info("battle challenge expired", "battle_id", battleID)
}

// CancelBattle withdraws a pending challenge. Only the creator may
// cancel, and only while the battle is still waiting.
func (h *HandlerManager) CancelBattle(userID int64, battleID string, bot BotInterface) {
	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if s.CreatorID != userID {
			return battle.ErrNotParticipant
		}
		if s.Status != battle.StatusWaiting {
			return battle.ErrAlreadyActive
		}
		s.Status = battle.StatusFinished
		return nil
	})

	switch err {
	case nil:
	case battle.ErrNotFound:
		bot.SendMessage(userID, "This challenge is already gone.", BackToMainKeyboard())
		return
	case battle.ErrAlreadyActive:
		bot.SendMessage(userID, "The battle already started, no backing out now!", nil)
		return
	default:
		return
	}

	h.Battles.Delete(battleID)
	bot.SendMessage(userID, "🚫 Challenge canceled.", BackToMainKeyboard())
}

// ShowBattleInvite renders a pending challenge to whoever opened its
// link. Binding happens only on the accept press, so the invitee can
// still walk away.
func (h *HandlerManager) ShowBattleInvite(userID int64, battleID string, bot BotInterface) {
	var creatorName string

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if s.CreatorID == userID {
			return battle.ErrSelfBattle
		}
		if s.Status != battle.StatusWaiting {
			return battle.ErrAlreadyActive
		}
		creatorName = s.CreatorName
		return nil
	})

	switch err {
	case nil:
	case battle.ErrNotFound:
		bot.SendMessage(userID, "⌛ This challenge is no longer available.", BackToMainKeyboard())
		return
	case battle.ErrSelfBattle:
		bot.SendMessage(userID, "That's your own challenge link. Send it to a friend!", nil)
		return
	case battle.ErrAlreadyActive:
		bot.SendMessage(userID, "Someone else already accepted this challenge.", BackToMainKeyboard())
		return
	default:
		return
	}

	text := fmt.Sprintf("⚔️ *%s challenged you to a battle!*\n\n%d questions, %d points per correct answer. Are you in?",
		creatorName, battle.QuestionsPerBattle, battle.PointsPerCorrect)
	bot.SendMessage(userID, text, BattleInviteKeyboard(battleID))
}

// AcceptBattle binds the caller as opponent and kicks off round one.
func (h *HandlerManager) AcceptBattle(userID int64, user *models.User, battleID string, bot BotInterface) {
	var creatorID int64

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if err := s.BindOpponent(userID); err != nil {
			return err
		}
		creatorID = s.CreatorID
		if s.ExpiryTimer != nil {
			s.ExpiryTimer.Stop()
		}
		return nil
	})

	switch err {
	case nil:
	case battle.ErrNotFound:
		bot.SendMessage(userID, "⌛ This challenge is no longer available.", BackToMainKeyboard())
		return
	case battle.ErrSelfBattle:
		bot.SendMessage(userID, "You can't battle yourself! Send the link to a friend.", nil)
		return
	case battle.ErrAlreadyActive:
		bot.SendMessage(userID, "Someone else already accepted this challenge.", BackToMainKeyboard())
		return
	default:
		logger.Error("failed to accept battle", "battle_id", battleID, "error", err)
		bot.SendMessage(userID, "❌ Something went wrong, try again.", nil)
		return
	}

	bot.SendMessage(creatorID, fmt.Sprintf("⚔️ %s accepted your challenge! Get ready...", user.DisplayName()), nil)
	bot.SendMessage(userID, "⚔️ Challenge accepted! Get ready...", nil)
	logger.Info("battle started", "battle_id", battleID, "creator", creatorID, "opponent", userID)

	h.deliverBattleRound(battleID, bot)
}

// DeclineBattle tears the waiting session down and tells the creator.
func (h *HandlerManager) DeclineBattle(userID int64, battleID string, bot BotInterface) {
	var creatorID int64

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if s.Status != battle.StatusWaiting || s.CreatorID == userID {
			return battle.ErrAlreadyActive
		}
		s.Status = battle.StatusFinished
		creatorID = s.CreatorID
		return nil
	})

	if err == nil {
		h.Battles.Delete(battleID)
		bot.SendMessage(creatorID, "😕 Your challenge was declined.", BackToMainKeyboard())
	}
	bot.SendMessage(userID, "Challenge declined.", BackToMainKeyboard())
}

// deliverBattleRound sends the question under the cursor to both
// participants. The prompt is captured under the session lock, the
// network sends happen outside it.
func (h *HandlerManager) deliverBattleRound(battleID string, bot BotInterface) {
	var (
		prompt       battle.Prompt
		participants []int64
	)

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		var err error
		prompt, err = s.DeliverCurrent()
		if err != nil {
			return err
		}
		participants = s.Participants()
		return nil
	})
	if err != nil {
		return
	}

	text := fmt.Sprintf("❓ *Question %d/%d*\n\n%s", prompt.Round+1, prompt.Total, prompt.Text)
	keyboard := BattleAnswerKeyboard(battleID, prompt.Round, prompt.Options)
	for _, chatID := range participants {
		bot.SendMessage(chatID, text, keyboard)
	}
}

// HandleBattleAnswer adjudicates one button press. The round in the
// callback payload names the round the button was issued for, so a press
// that arrives after the cursor moved still scores against its own
// round and never advances the battle twice. The battle ends when both
// participants have answered the final round, or when the grace window
// for the slower one runs out.
func (h *HandlerManager) HandleBattleAnswer(userID int64, callbackID string, messageID int, battleID string, round, selected int, bot BotInterface) {
	var (
		res      battle.AnswerResult
		outcome  battle.Outcome
		creator  int64
		opponent int64
		started  time.Time
		qText    string
		total    int
	)

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		var err error
		res, err = s.Answer(userID, round, selected)
		if err != nil {
			return err
		}
		qText = s.Questions[round].QuestionText
		total = len(s.Questions)
		if res.Finished {
			outcome = s.Result()
			creator = s.CreatorID
			opponent = s.OpponentID
			started = s.StartedAt
		} else if res.Advanced {
			s.AdvanceTimer = time.AfterFunc(h.Config.GetBattleRoundDelay(), func() {
				h.deliverBattleRound(battleID, bot)
			})
		} else if res.RivalOpen {
			s.AdvanceTimer = time.AfterFunc(h.Config.GetBattleFinalGrace(), func() {
				h.settleBattle(battleID, bot)
			})
		}
		return nil
	})

	switch err {
	case nil:
	case battle.ErrNotFound:
		bot.AnswerCallback(callbackID, "This battle is already over.")
		return
	case battle.ErrAlreadyAnswered:
		bot.AnswerCallback(callbackID, "You already answered this one!")
		return
	case battle.ErrNotParticipant:
		bot.AnswerCallback(callbackID, "You are not part of this battle.")
		return
	case battle.ErrStaleRound:
		bot.AnswerCallback(callbackID, "That question is no longer open.")
		return
	default:
		logger.Error("battle answer failed", "battle_id", battleID, "user", userID, "error", err)
		bot.AnswerCallback(callbackID, "Something went wrong.")
		return
	}

	var feedback string
	if res.Correct {
		feedback = fmt.Sprintf("✅ Correct! +%d points", res.Points)
	} else {
		feedback = "❌ Wrong! Answer: " + res.CorrectText
	}
	bot.AnswerCallback(callbackID, feedback)
	bot.EditMessage(userID, messageID, fmt.Sprintf("❓ *Question %d/%d*\n\n%s\n\n%s", round+1, total, qText, feedback), nil)

	if res.Finished {
		h.endBattle(battleID, outcome, creator, opponent, started, bot)
	}
}

// settleBattle closes a battle whose final-round grace elapsed with one
// participant still silent. Their open round scores nothing. A no-op
// when the rival's answer landed first.
func (h *HandlerManager) settleBattle(battleID string, bot BotInterface) {
	var (
		outcome  battle.Outcome
		creator  int64
		opponent int64
		started  time.Time
	)

	err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		if !s.ForceFinish() {
			return battle.ErrStaleRound
		}
		outcome = s.Result()
		creator = s.CreatorID
		opponent = s.OpponentID
		started = s.StartedAt
		return nil
	})
	if err != nil {
		return
	}

	logger.Info("battle settled after final round grace", "battle_id", battleID)
	h.endBattle(battleID, outcome, creator, opponent, started, bot)
}

// endBattle reconciles a finished battle: personalized summaries first,
// then best-effort persistence. A history write failure is logged and
// never shown to the players.
func (h *HandlerManager) endBattle(battleID string, out battle.Outcome, creatorID, opponentID int64, startedAt time.Time, bot BotInterface) {
	h.Battles.Delete(battleID)

	h.sendBattleSummary(creatorID, out.CreatorScore, out.OpponentScore, out.WinnerID == creatorID, out.WinnerID == 0, bot)
	h.sendBattleSummary(opponentID, out.OpponentScore, out.CreatorScore, out.WinnerID == opponentID, out.WinnerID == 0, bot)

	logger.Info("battle finished",
		"battle_id", battleID,
		"creator_score", out.CreatorScore,
		"opponent_score", out.OpponentScore,
		"winner", out.WinnerID,
	)

	creator, err := h.UserRepo.GetUserByTelegramID(creatorID)
	if err != nil {
		logger.Error("failed to load creator for battle record", "battle_id", battleID, "error", err)
		return
	}
	opponent, err := h.UserRepo.GetUserByTelegramID(opponentID)
	if err != nil {
		logger.Error("failed to load opponent for battle record", "battle_id", battleID, "error", err)
		return
	}

	result := &models.BattleResult{
		Player1ID:    creator.ID,
		Player2ID:    opponent.ID,
		Player1Score: out.CreatorScore,
		Player2Score: out.OpponentScore,
		StartedAt:    startedAt,
		FinishedAt:   time.Now(),
	}
	switch out.WinnerID {
	case creatorID:
		result.WinnerID = &creator.ID
	case opponentID:
		result.WinnerID = &opponent.ID
	}
	if err := h.BattleRepo.RecordResult(result); err != nil {
		logger.Error("failed to record battle result", "battle_id", battleID, "error", err)
	}

	for _, p := range []struct {
		user  *models.User
		tgID  int64
		score int
		won   bool
	}{
		{creator, creatorID, out.CreatorScore, out.WinnerID == creatorID},
		{opponent, opponentID, out.OpponentScore, out.WinnerID == opponentID},
	} {
		if err := h.StatsRepo.RecordBattleOutcome(p.user.ID, p.won); err != nil {
			logger.Error("failed to update battle stats", "user_id", p.user.ID, "error", err)
		}
		if p.score > 0 {
			if err := h.StatsRepo.AddScore(p.user.ID, p.score); err != nil {
				logger.Error("failed to credit battle score", "user_id", p.user.ID, "error", err)
			}
		}
		if p.won {
			h.grantAchievement(p.user.ID, p.tgID, models.AchievementBattleWinner, bot)
		}
	}
}

func (h *HandlerManager) sendBattleSummary(chatID int64, ownScore, theirScore int, won, tie bool, bot BotInterface) {
	var verdict string
	switch {
	case tie:
		verdict = "🤝 It's a tie!"
	case won:
		verdict = "🏆 You won!"
	default:
		verdict = "😢 You lost. Rematch?"
	}

	text := fmt.Sprintf("⚔️ *Battle finished!*\n\nYour score: %d\nOpponent: %d\n\n%s", ownScore, theirScore, verdict)
	bot.SendMessage(chatID, text, PlayAgainKeyboard())
}

// JoinBattleQueue matches the caller with the longest-waiting queued
// user, or queues them if nobody is waiting.
func (h *HandlerManager) JoinBattleQueue(userID int64, user *models.User, bot BotInterface) {
	if queued, err := h.BattleRepo.IsQueued(user.ID); err == nil && queued {
		bot.SendMessage(userID, "⏳ You're already in the queue.", LeaveQueueKeyboard())
		return
	}

	entry, err := h.BattleRepo.PopOldest(user.ID)
	if err != nil {
		if joinErr := h.BattleRepo.AddToQueue(user.ID); joinErr != nil {
			logger.Error("failed to join battle queue", "user_id", user.ID, "error", joinErr)
			bot.SendMessage(userID, "❌ Couldn't join the queue, try again.", nil)
			return
		}
		bot.SendMessage(userID, "⏳ Waiting for an opponent... You'll be matched with the next player who joins.", LeaveQueueKeyboard())
		return
	}

	opponent, err := h.UserRepo.GetUserByID(entry.UserID)
	if err != nil {
		logger.Error("queued user vanished", "user_id", entry.UserID, "error", err)
		bot.SendMessage(userID, "❌ Matchmaking failed, try again.", nil)
		return
	}

	questions, err := h.QuestionRepo.GetRandomActiveQuestions(battle.QuestionsPerBattle)
	if err != nil {
		logger.Error("failed to draw matchmaking questions", "error", err)
		bot.SendMessage(userID, "❌ Not enough questions available right now.", BackToMainKeyboard())
		return
	}

	session := h.Battles.Create(opponent.TelegramID, opponent.DisplayName(), questions)
	battleID := session.ID
	if err := h.Battles.Mutate(battleID, func(s *battle.Session) error {
		return s.BindOpponent(userID)
	}); err != nil {
		h.Battles.Delete(battleID)
		logger.Error("failed to bind matchmade opponent", "battle_id", battleID, "error", err)
		bot.SendMessage(userID, "❌ Matchmaking failed, try again.", nil)
		return
	}

	bot.SendMessage(opponent.TelegramID, fmt.Sprintf("⚔️ Matched! You're battling %s. Get ready...", user.DisplayName()), nil)
	bot.SendMessage(userID, fmt.Sprintf("⚔️ Matched! You're battling %s. Get ready...", opponent.DisplayName()), nil)
	logger.Info("matchmade battle started", "battle_id", battleID, "creator", opponent.TelegramID, "opponent", userID)

	h.deliverBattleRound(battleID, bot)
}

// LeaveBattleQueue drops the caller out of matchmaking.
func (h *HandlerManager) LeaveBattleQueue(userID int64, user *models.User, bot BotInterface) {
	if err := h.BattleRepo.RemoveFromQueue(user.ID); err != nil {
		logger.Error("failed to leave battle queue", "user_id", user.ID, "error", err)
		bot.SendMessage(userID, "❌ Couldn't leave the queue, try again.", nil)
		return
	}
	bot.SendMessage(userID, "👋 Left the battle queue.", BackToMainKeyboard())
}
