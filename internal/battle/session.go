package battle

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/models"
)

// Session is one battle from challenge to result delivery. All mutation
// goes through Store.Mutate so the two participants' worker goroutines
// never observe a partial update.
//
// Answers are adjudicated against per-round snapshots (roundCorrect,
// roundOptions) captured at delivery time, not against the live cursor:
// when both players answer the same round close together, the first
// submission advances the cursor and the second is still scored against
// the round it was issued for.
type Session struct {
	ID          string
	CreatorID   int64
	CreatorName string
	OpponentID  int64 // 0 until accepted
	Status      string

	Questions       []models.Question // frozen at creation
	CurrentQuestion int               // cursor into Questions

	Scores    map[int64]int
	CreatedAt time.Time
	StartedAt time.Time

	roundCorrect map[int]int      // round -> post-shuffle correct index
	roundOptions map[int][]string // round -> shuffled option texts
	answered     map[int64]map[int]bool
	advanced     map[int]bool // round -> cursor already advanced

	// Timers owned by the engine: acceptance reaper while waiting,
	// next-round delivery while active. Stopped by Store.Delete.
	ExpiryTimer  *time.Timer
	AdvanceTimer *time.Timer

	mu sync.Mutex
}

// Prompt is one delivered question: the text plus the shuffled options
// to render as inline buttons. Round is pinned into the callback payload
// of every button so late answers adjudicate against their own round.
type Prompt struct {
	Round   int
	Total   int
	Text    string
	Options []string
}

// AnswerResult is the adjudication of a single submission.
type AnswerResult struct {
	Correct     bool
	Points      int
	CorrectText string
	Advanced    bool // this submission moved the cursor to a further round
	Finished    bool // both participants have now answered the final round
	RivalOpen   bool // final round answered, the other participant's is still open
}

// Outcome is the final reconciliation of a finished battle.
type Outcome struct {
	CreatorScore  int
	OpponentScore int
	WinnerID      int64 // 0 on a tie
}

func newSession(id string, creatorID int64, creatorName string, questions []models.Question) *Session {
	return &Session{
		ID:           id,
		CreatorID:    creatorID,
		CreatorName:  creatorName,
		Status:       StatusWaiting,
		Questions:    questions,
		Scores:       map[int64]int{creatorID: 0},
		CreatedAt:    time.Now(),
		roundCorrect: make(map[int]int),
		roundOptions: make(map[int][]string),
		answered:     make(map[int64]map[int]bool),
		advanced:     make(map[int]bool),
	}
}

// IsParticipant reports whether id is the creator or the bound opponent.
func (s *Session) IsParticipant(id int64) bool {
	return id == s.CreatorID || (s.OpponentID != 0 && id == s.OpponentID)
}

// Participants returns the bound participants, creator first.
func (s *Session) Participants() []int64 {
	if s.OpponentID == 0 {
		return []int64{s.CreatorID}
	}
	return []int64{s.CreatorID, s.OpponentID}
}

// BindOpponent accepts the challenge: binds the opponent, seeds both
// score entries and flips the session to active. Once set the opponent
// never changes. A finished status is a teardown tombstone, so binding
// against it resolves the same as a session that is already gone.
func (s *Session) BindOpponent(opponentID int64) error {
	if s.Status == StatusFinished {
		return ErrNotFound
	}
	if opponentID == s.CreatorID {
		return ErrSelfBattle
	}
	if s.Status != StatusWaiting || s.OpponentID != 0 {
		return ErrAlreadyActive
	}

	s.OpponentID = opponentID
	s.Status = StatusActive
	s.Scores[s.CreatorID] = 0
	s.Scores[opponentID] = 0
	s.StartedAt = time.Now()
	return nil
}

// DeliverCurrent shuffles the question under the cursor, pins the
// post-shuffle correct index for this round and returns the prompt to
// send to both participants. The same shuffle is sent to both.
func (s *Session) DeliverCurrent() (Prompt, error) {
	if s.Status != StatusActive {
		return Prompt{}, ErrStaleRound
	}
	if s.CurrentQuestion >= len(s.Questions) {
		return Prompt{}, ErrStaleRound
	}

	round := s.CurrentQuestion
	question := s.Questions[round]

	shuffled, correctIdx := ShuffleOptions(question.Options(), question.CorrectOption)
	s.roundCorrect[round] = correctIdx
	s.roundOptions[round] = shuffled

	return Prompt{
		Round:   round,
		Total:   len(s.Questions),
		Text:    question.QuestionText,
		Options: shuffled,
	}, nil
}

// Answer adjudicates one participant's submission for one round against
// that round's pinned snapshot. Each participant may answer each round
// once; the first submission per round advances the cursor. The session
// finishes only when every participant has answered the final round, so
// the slower player's last press still counts toward the outcome.
func (s *Session) Answer(participantID int64, round, selected int) (AnswerResult, error) {
	if s.Status != StatusActive {
		return AnswerResult{}, ErrStaleRound
	}
	if !s.IsParticipant(participantID) {
		return AnswerResult{}, ErrNotParticipant
	}
	correctIdx, delivered := s.roundCorrect[round]
	if !delivered {
		return AnswerResult{}, ErrStaleRound
	}
	if s.answered[participantID] == nil {
		s.answered[participantID] = make(map[int]bool)
	}
	if s.answered[participantID][round] {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	s.answered[participantID][round] = true

	res := AnswerResult{
		Correct:     selected == correctIdx,
		CorrectText: s.roundOptions[round][correctIdx],
	}
	if res.Correct {
		res.Points = PointsPerCorrect
		s.Scores[participantID] += PointsPerCorrect
	}

	// Advance-once guard: only the first submission of a round moves
	// the cursor, a late second answer is scored but does not advance.
	last := round == len(s.Questions)-1
	if !s.advanced[round] {
		s.advanced[round] = true
		s.CurrentQuestion++
		if !last {
			res.Advanced = true
		}
	}
	if last {
		if s.allAnswered(round) {
			s.Status = StatusFinished
			res.Finished = true
		} else {
			res.RivalOpen = true
		}
	}

	return res, nil
}

func (s *Session) allAnswered(round int) bool {
	for _, p := range s.Participants() {
		if !s.answered[p][round] {
			return false
		}
	}
	return true
}

// ForceFinish closes an active session whose final round was delivered
// and answered by at least one participant. The silent participant's
// open round scores nothing. Returns false when there are rounds left
// or the session already finished.
func (s *Session) ForceFinish() bool {
	if s.Status != StatusActive || s.CurrentQuestion < len(s.Questions) {
		return false
	}
	s.Status = StatusFinished
	return true
}

// Result computes the final outcome. Valid once Status is finished.
func (s *Session) Result() Outcome {
	out := Outcome{
		CreatorScore:  s.Scores[s.CreatorID],
		OpponentScore: s.Scores[s.OpponentID],
	}
	if out.CreatorScore > out.OpponentScore {
		out.WinnerID = s.CreatorID
	} else if out.OpponentScore > out.CreatorScore {
		out.WinnerID = s.OpponentID
	}
	return out
}

// ShuffleOptions returns a uniform random permutation of options and the
// new index of the originally-correct option. Shared by battle delivery
// and the solo quiz.
func ShuffleOptions(options []string, correctIdx int) ([]string, int) {
	shuffled := make([]string, len(options))
	copy(shuffled, options)

	perm := rand.Perm(len(options))
	newCorrect := 0
	for newPos, origPos := range perm {
		shuffled[newPos] = options[origPos]
		if origPos == correctIdx {
			newCorrect = newPos
		}
	}
	return shuffled, newCorrect
}
