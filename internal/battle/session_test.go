package battle

import (
	"sort"
	"testing"

	"github.com/Tohidkhan6332/quizbot/internal/models"
)

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:            uint(i + 1),
			QuestionText:  "question",
			Option1:       "a",
			Option2:       "b",
			Option3:       "c",
			Option4:       "d",
			CorrectOption: i % models.OptionsPerQuestion,
		}
	}
	return questions
}

func activeSession(t *testing.T, creator, opponent int64, n int) *Session {
	t.Helper()
	s := newSession("test-battle", creator, "Creator", testQuestions(n))
	if err := s.BindOpponent(opponent); err != nil {
		t.Fatalf("BindOpponent() error = %v", err)
	}
	return s
}

func TestShuffleOptions(t *testing.T) {
	options := []string{"alpha", "beta", "gamma", "delta"}

	for correctIdx := 0; correctIdx < len(options); correctIdx++ {
		for i := 0; i < 50; i++ {
			shuffled, newCorrect := ShuffleOptions(options, correctIdx)

			if len(shuffled) != len(options) {
				t.Fatalf("ShuffleOptions() returned %d options, want %d", len(shuffled), len(options))
			}

			// Same multiset of options
			a := append([]string(nil), options...)
			b := append([]string(nil), shuffled...)
			sort.Strings(a)
			sort.Strings(b)
			for j := range a {
				if a[j] != b[j] {
					t.Fatalf("ShuffleOptions() lost options: got %v", shuffled)
				}
			}

			if shuffled[newCorrect] != options[correctIdx] {
				t.Fatalf("correct index not tracked: got %q at %d, want %q",
					shuffled[newCorrect], newCorrect, options[correctIdx])
			}
		}
	}
}

func TestBindOpponent(t *testing.T) {
	t.Run("accept flips to active and seeds scores", func(t *testing.T) {
		s := newSession("b1", 100, "Creator", testQuestions(5))

		if s.Status != StatusWaiting {
			t.Fatalf("new session status = %q, want %q", s.Status, StatusWaiting)
		}
		// One score entry per bound participant, creator only while waiting.
		if len(s.Scores) != 1 {
			t.Errorf("waiting session has %d score entries, want 1", len(s.Scores))
		}
		if err := s.BindOpponent(200); err != nil {
			t.Fatalf("BindOpponent() error = %v", err)
		}
		if s.Status != StatusActive {
			t.Errorf("status = %q, want %q", s.Status, StatusActive)
		}
		if len(s.Scores) != 2 {
			t.Errorf("active session has %d score entries, want 2", len(s.Scores))
		}
		if got, ok := s.Scores[100]; !ok || got != 0 {
			t.Errorf("creator score = %d (present=%v), want 0", got, ok)
		}
		if got, ok := s.Scores[200]; !ok || got != 0 {
			t.Errorf("opponent score = %d (present=%v), want 0", got, ok)
		}
	})

	t.Run("creator cannot accept own challenge", func(t *testing.T) {
		s := newSession("b2", 100, "Creator", testQuestions(5))
		if err := s.BindOpponent(100); err != ErrSelfBattle {
			t.Errorf("BindOpponent(creator) error = %v, want ErrSelfBattle", err)
		}
		if s.Status != StatusWaiting {
			t.Errorf("status changed to %q after rejected accept", s.Status)
		}

		// Self-accept stays rejected once the session is active too.
		if err := s.BindOpponent(200); err != nil {
			t.Fatalf("BindOpponent() error = %v", err)
		}
		if err := s.BindOpponent(100); err != ErrSelfBattle {
			t.Errorf("BindOpponent(creator) on active error = %v, want ErrSelfBattle", err)
		}
	})

	t.Run("second accept is rejected", func(t *testing.T) {
		s := newSession("b3", 100, "Creator", testQuestions(5))
		if err := s.BindOpponent(200); err != nil {
			t.Fatalf("first BindOpponent() error = %v", err)
		}
		if err := s.BindOpponent(300); err != ErrAlreadyActive {
			t.Errorf("second BindOpponent() error = %v, want ErrAlreadyActive", err)
		}
		if s.OpponentID != 200 {
			t.Errorf("opponent = %d, want 200", s.OpponentID)
		}
	})

	t.Run("accept racing a teardown resolves to not found", func(t *testing.T) {
		// Expiry, cancel and decline flip the status to finished under
		// the session lock before removing the session from the store.
		s := newSession("b4", 100, "Creator", testQuestions(5))
		s.Status = StatusFinished

		if err := s.BindOpponent(200); err != ErrNotFound {
			t.Errorf("BindOpponent() on torn-down session error = %v, want ErrNotFound", err)
		}
		if s.OpponentID != 0 {
			t.Errorf("opponent bound into torn-down session: %d", s.OpponentID)
		}
	})
}

func TestDeliverCurrent(t *testing.T) {
	s := activeSession(t, 100, 200, 5)

	prompt, err := s.DeliverCurrent()
	if err != nil {
		t.Fatalf("DeliverCurrent() error = %v", err)
	}
	if prompt.Round != 0 || prompt.Total != 5 {
		t.Errorf("prompt round/total = %d/%d, want 0/5", prompt.Round, prompt.Total)
	}
	if len(prompt.Options) != models.OptionsPerQuestion {
		t.Errorf("prompt options = %d, want %d", len(prompt.Options), models.OptionsPerQuestion)
	}

	// Delivery pins the snapshot for the round.
	if _, ok := s.roundCorrect[0]; !ok {
		t.Error("round 0 snapshot not pinned after delivery")
	}
}

func TestAnswerAdjudication(t *testing.T) {
	s := activeSession(t, 100, 200, 5)
	prompt, err := s.DeliverCurrent()
	if err != nil {
		t.Fatalf("DeliverCurrent() error = %v", err)
	}
	correct := s.roundCorrect[0]
	wrong := (correct + 1) % len(prompt.Options)

	t.Run("non-participant rejected", func(t *testing.T) {
		if _, err := s.Answer(999, 0, correct); err != ErrNotParticipant {
			t.Errorf("Answer() error = %v, want ErrNotParticipant", err)
		}
	})

	t.Run("undelivered round rejected", func(t *testing.T) {
		if _, err := s.Answer(100, 3, 0); err != ErrStaleRound {
			t.Errorf("Answer() error = %v, want ErrStaleRound", err)
		}
	})

	t.Run("correct answer scores points", func(t *testing.T) {
		res, err := s.Answer(100, 0, correct)
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if !res.Correct || res.Points != PointsPerCorrect {
			t.Errorf("res = %+v, want correct with %d points", res, PointsPerCorrect)
		}
		if s.Scores[100] != PointsPerCorrect {
			t.Errorf("creator score = %d, want %d", s.Scores[100], PointsPerCorrect)
		}
	})

	t.Run("repeat answer for same round rejected", func(t *testing.T) {
		if _, err := s.Answer(100, 0, correct); err != ErrAlreadyAnswered {
			t.Errorf("Answer() error = %v, want ErrAlreadyAnswered", err)
		}
		if s.Scores[100] != PointsPerCorrect {
			t.Errorf("score changed on rejected answer: %d", s.Scores[100])
		}
	})

	t.Run("wrong answer scores nothing", func(t *testing.T) {
		res, err := s.Answer(200, 0, wrong)
		if err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		if res.Correct || res.Points != 0 {
			t.Errorf("res = %+v, want incorrect with 0 points", res)
		}
		if res.CorrectText != prompt.Options[correct] {
			t.Errorf("CorrectText = %q, want %q", res.CorrectText, prompt.Options[correct])
		}
		if s.Scores[200] != 0 {
			t.Errorf("opponent score = %d, want 0", s.Scores[200])
		}
	})
}

func TestAdvanceOnce(t *testing.T) {
	s := activeSession(t, 100, 200, 5)
	if _, err := s.DeliverCurrent(); err != nil {
		t.Fatalf("DeliverCurrent() error = %v", err)
	}
	correct := s.roundCorrect[0]

	first, err := s.Answer(100, 0, correct)
	if err != nil {
		t.Fatalf("first Answer() error = %v", err)
	}
	if !first.Advanced {
		t.Error("first submission did not advance the round")
	}
	if s.CurrentQuestion != 1 {
		t.Fatalf("cursor = %d after first answer, want 1", s.CurrentQuestion)
	}

	// The opponent's late press carries round 0 in its payload. It is
	// scored against round 0 and must not advance again.
	late, err := s.Answer(200, 0, correct)
	if err != nil {
		t.Fatalf("late Answer() error = %v", err)
	}
	if late.Advanced || late.Finished {
		t.Errorf("late submission advanced: %+v", late)
	}
	if !late.Correct || s.Scores[200] != PointsPerCorrect {
		t.Errorf("late submission not scored against its own round: score = %d", s.Scores[200])
	}
	if s.CurrentQuestion != 1 {
		t.Errorf("cursor = %d after late answer, want 1", s.CurrentQuestion)
	}
}

func TestFinalRoundWaitsForRival(t *testing.T) {
	s := activeSession(t, 100, 200, 1)
	if _, err := s.DeliverCurrent(); err != nil {
		t.Fatalf("DeliverCurrent() error = %v", err)
	}
	correct := s.roundCorrect[0]

	// The first final-round answer must not finish the battle. The
	// rival's press is still in flight and their points must count.
	first, err := s.Answer(100, 0, correct)
	if err != nil {
		t.Fatalf("first Answer() error = %v", err)
	}
	if first.Finished || first.Advanced {
		t.Errorf("first final-round answer = %+v, want neither finished nor advanced", first)
	}
	if !first.RivalOpen {
		t.Error("first final-round answer did not report the rival's round open")
	}
	if s.Status != StatusActive {
		t.Fatalf("status = %q after one final-round answer, want %q", s.Status, StatusActive)
	}

	second, err := s.Answer(200, 0, correct)
	if err != nil {
		t.Fatalf("second Answer() error = %v", err)
	}
	if !second.Finished {
		t.Error("second final-round answer did not finish the battle")
	}

	out := s.Result()
	if out.CreatorScore != PointsPerCorrect || out.OpponentScore != PointsPerCorrect {
		t.Errorf("scores = %d-%d, want %d-%d", out.CreatorScore, out.OpponentScore, PointsPerCorrect, PointsPerCorrect)
	}
	if out.WinnerID != 0 {
		t.Errorf("winner = %d, want 0 for a tie", out.WinnerID)
	}
}

func TestForceFinish(t *testing.T) {
	s := activeSession(t, 100, 200, 1)
	if _, err := s.DeliverCurrent(); err != nil {
		t.Fatalf("DeliverCurrent() error = %v", err)
	}
	correct := s.roundCorrect[0]

	// Rounds still open: nothing to settle yet.
	if s.ForceFinish() {
		t.Error("ForceFinish() closed a session with open rounds")
	}

	if _, err := s.Answer(100, 0, correct); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !s.ForceFinish() {
		t.Error("ForceFinish() did not close the session after the grace case")
	}
	if s.Status != StatusFinished {
		t.Errorf("status = %q, want %q", s.Status, StatusFinished)
	}
	if s.ForceFinish() {
		t.Error("ForceFinish() reported closing an already finished session")
	}

	// The silent rival's press after settlement no longer scores.
	if _, err := s.Answer(200, 0, correct); err != ErrStaleRound {
		t.Errorf("Answer() after settlement error = %v, want ErrStaleRound", err)
	}

	out := s.Result()
	if out.CreatorScore != PointsPerCorrect || out.OpponentScore != 0 {
		t.Errorf("scores = %d-%d, want %d-0", out.CreatorScore, out.OpponentScore, PointsPerCorrect)
	}
	if out.WinnerID != 100 {
		t.Errorf("winner = %d, want 100", out.WinnerID)
	}
}

func playBattle(t *testing.T, s *Session, creatorRight, opponentRight [5]bool) Outcome {
	t.Helper()
	for round := 0; round < len(s.Questions); round++ {
		if _, err := s.DeliverCurrent(); err != nil {
			t.Fatalf("DeliverCurrent() round %d error = %v", round, err)
		}
		correct := s.roundCorrect[round]
		wrong := (correct + 1) % models.OptionsPerQuestion

		pick := func(right bool) int {
			if right {
				return correct
			}
			return wrong
		}

		if _, err := s.Answer(s.CreatorID, round, pick(creatorRight[round])); err != nil {
			t.Fatalf("creator Answer() round %d error = %v", round, err)
		}
		if _, err := s.Answer(s.OpponentID, round, pick(opponentRight[round])); err != nil {
			t.Fatalf("opponent Answer() round %d error = %v", round, err)
		}
	}
	if s.Status != StatusFinished {
		t.Fatalf("status = %q after final round, want %q", s.Status, StatusFinished)
	}
	if s.CurrentQuestion != len(s.Questions) {
		t.Fatalf("cursor = %d after finish, want %d", s.CurrentQuestion, len(s.Questions))
	}
	return s.Result()
}

func TestFullBattleOutcomes(t *testing.T) {
	t.Run("creator wins 30-20", func(t *testing.T) {
		s := activeSession(t, 100, 200, 5)
		out := playBattle(t, s,
			[5]bool{true, true, true, false, false},
			[5]bool{true, true, false, false, false},
		)
		if out.CreatorScore != 30 || out.OpponentScore != 20 {
			t.Errorf("scores = %d-%d, want 30-20", out.CreatorScore, out.OpponentScore)
		}
		if out.WinnerID != 100 {
			t.Errorf("winner = %d, want 100", out.WinnerID)
		}
	})

	t.Run("tie at 20-20", func(t *testing.T) {
		s := activeSession(t, 100, 200, 5)
		out := playBattle(t, s,
			[5]bool{true, true, false, false, false},
			[5]bool{false, false, false, true, true},
		)
		if out.CreatorScore != 20 || out.OpponentScore != 20 {
			t.Errorf("scores = %d-%d, want 20-20", out.CreatorScore, out.OpponentScore)
		}
		if out.WinnerID != 0 {
			t.Errorf("winner = %d, want 0 for a tie", out.WinnerID)
		}
	})

	t.Run("delivery after finish rejected", func(t *testing.T) {
		s := activeSession(t, 100, 200, 5)
		playBattle(t, s, [5]bool{}, [5]bool{})
		if _, err := s.DeliverCurrent(); err != ErrStaleRound {
			t.Errorf("DeliverCurrent() after finish error = %v, want ErrStaleRound", err)
		}
	})
}
