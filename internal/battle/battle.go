// Package battle holds the in-memory state of live head-to-head matches:
// the session registry and the per-session state machine. Durable history
// is written elsewhere (repositories) only when a battle finishes.
package battle

import (
	apperrors "github.com/Tohidkhan6332/quizbot/pkg/errors"
)

// Session status values. A session only ever moves forward:
// waiting -> active -> finished. A session absent from the store is gone.
const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Game configuration
const (
	QuestionsPerBattle = 5
	PointsPerCorrect   = 10
)

var (
	ErrNotFound        = apperrors.New(apperrors.ErrCodeNotFound, "battle not found")
	ErrSelfBattle      = apperrors.New(apperrors.ErrCodeForbidden, "cannot battle yourself")
	ErrAlreadyActive   = apperrors.New(apperrors.ErrCodeAlreadyExists, "battle already accepted")
	ErrNotParticipant  = apperrors.New(apperrors.ErrCodeForbidden, "not a participant of this battle")
	ErrAlreadyAnswered = apperrors.New(apperrors.ErrCodeAlreadyExists, "round already answered")
	ErrStaleRound      = apperrors.New(apperrors.ErrCodeValidation, "no such round in this battle")
)
