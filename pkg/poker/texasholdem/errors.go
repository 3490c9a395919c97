package texasholdem

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned when an action is submitted after the hand is over
var ErrGameOver = errors.New("the hand is over")

// ErrPlayerNotFound is returned when the player is not seated at the table
var ErrPlayerNotFound = errors.New("player is not seated at this table")

// ErrHandInProgress is returned when a new hand is requested before the current one is over
var ErrHandInProgress = errors.New("the current hand is still in progress")

// ErrInvariantViolation is returned when an operation would corrupt the table
// This is never caused by player input
var ErrInvariantViolation = errors.New("table invariant violated")

// ParticipantError is an error that happened because of a participant error
type ParticipantError string

func (p ParticipantError) Error() string {
	return string(p)
}

// ErrNotPlayersTurn is returned when a player acts out of turn
var ErrNotPlayersTurn = ParticipantError("it is not your turn")

// InvalidActionError is returned when an action is not legal in the current state of the table
type InvalidActionError string

func (i InvalidActionError) Error() string {
	return string(i)
}

func newInvalidActionError(format string, a ...interface{}) InvalidActionError {
	return InvalidActionError(fmt.Sprintf(format, a...))
}

// OptionsError is returned when a hand cannot be dealt with the players or options given
type OptionsError string

func (o OptionsError) Error() string {
	return string(o)
}
