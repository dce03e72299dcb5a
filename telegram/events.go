package telegram

import (
	"strconv"
	"strings"

	"github.com/Tohidkhan6332/quizbot/pkg/errors"
)

// CallbackKind discriminates parsed callback events.
type CallbackKind int

const (
	CallbackUnknown CallbackKind = iota
	CallbackMenu
	CallbackQuizCategory
	CallbackQuizAnswer
	CallbackQuizQuit
	CallbackBattleCreate
	CallbackBattleQueue
	CallbackBattleLeave
	CallbackBattleAccept
	CallbackBattleDecline
	CallbackBattleCancel
	CallbackBattleAnswer
	CallbackAdmin
)

// CallbackEvent is a fully decoded button press. Callback payloads are
// colon-delimited: decoding happens once here, handlers only ever see
// typed fields.
type CallbackEvent struct {
	Kind     CallbackKind
	Action   string // menu:* and admin:* actions
	Category string // quiz:cat:*
	BattleID string
	Round    int // battle answers: the round the button was issued for
	Question int // solo answers: pinned question index
	Option   int // selected option index after shuffle
}

var errBadCallback = errors.New(errors.ErrCodeValidation, "malformed callback payload")

// ParseCallback decodes a raw callback data string.
func ParseCallback(data string) (CallbackEvent, error) {
	parts := strings.Split(data, ":")

	switch parts[0] {
	case "menu":
		if len(parts) != 2 || parts[1] == "" {
			return CallbackEvent{}, errBadCallback
		}
		return CallbackEvent{Kind: CallbackMenu, Action: parts[1]}, nil

	case "quiz":
		return parseQuizCallback(parts)

	case "battle":
		return parseBattleCallback(parts)

	case "admin":
		if len(parts) != 2 || parts[1] == "" {
			return CallbackEvent{}, errBadCallback
		}
		return CallbackEvent{Kind: CallbackAdmin, Action: parts[1]}, nil
	}

	return CallbackEvent{}, errBadCallback
}

func parseQuizCallback(parts []string) (CallbackEvent, error) {
	if len(parts) < 2 {
		return CallbackEvent{}, errBadCallback
	}

	switch parts[1] {
	case "cat":
		if len(parts) != 3 || parts[2] == "" {
			return CallbackEvent{}, errBadCallback
		}
		return CallbackEvent{Kind: CallbackQuizCategory, Category: parts[2]}, nil

	case "ans":
		if len(parts) != 4 {
			return CallbackEvent{}, errBadCallback
		}
		question, err := strconv.Atoi(parts[2])
		if err != nil || question < 0 {
			return CallbackEvent{}, errBadCallback
		}
		option, err := strconv.Atoi(parts[3])
		if err != nil || option < 0 {
			return CallbackEvent{}, errBadCallback
		}
		return CallbackEvent{Kind: CallbackQuizAnswer, Question: question, Option: option}, nil

	case "quit":
		return CallbackEvent{Kind: CallbackQuizQuit}, nil
	}

	return CallbackEvent{}, errBadCallback
}

func parseBattleCallback(parts []string) (CallbackEvent, error) {
	if len(parts) < 2 {
		return CallbackEvent{}, errBadCallback
	}

	switch parts[1] {
	case "create":
		return CallbackEvent{Kind: CallbackBattleCreate}, nil

	case "queue":
		return CallbackEvent{Kind: CallbackBattleQueue}, nil

	case "leave":
		return CallbackEvent{Kind: CallbackBattleLeave}, nil

	case "accept", "decline", "cancel":
		if len(parts) != 3 || parts[2] == "" {
			return CallbackEvent{}, errBadCallback
		}
		kind := CallbackBattleAccept
		switch parts[1] {
		case "decline":
			kind = CallbackBattleDecline
		case "cancel":
			kind = CallbackBattleCancel
		}
		return CallbackEvent{Kind: kind, BattleID: parts[2]}, nil

	case "ans":
		if len(parts) != 5 || parts[2] == "" {
			return CallbackEvent{}, errBadCallback
		}
		round, err := strconv.Atoi(parts[3])
		if err != nil || round < 0 {
			return CallbackEvent{}, errBadCallback
		}
		option, err := strconv.Atoi(parts[4])
		if err != nil || option < 0 {
			return CallbackEvent{}, errBadCallback
		}
		return CallbackEvent{
			Kind:     CallbackBattleAnswer,
			BattleID: parts[2],
			Round:    round,
			Option:   option,
		}, nil
	}

	return CallbackEvent{}, errBadCallback
}
