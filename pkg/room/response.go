package room

import (
	"errors"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/store"
)

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx string) *Response {
	return &Response{
		Key:     "status",
		Value:   "OK",
		Context: ctx,
	}
}

// PayloadIn is the format we expect from a websocket client
type PayloadIn struct {
	// Action is raise, call, check or fold, or one of the table commands
	Action string `json:"action"`
	Amount int    `json:"amount"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// table commands a client can send besides player actions
const (
	commandNextHand = "nextHand"
	commandView     = "view"
)

// IsUserError returns true if the error was caused by the request and its message is safe to show
func IsUserError(err error) bool {
	var participantErr texasholdem.ParticipantError
	var invalidErr texasholdem.InvalidActionError
	var optionsErr texasholdem.OptionsError

	return errors.As(err, &participantErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &optionsErr) ||
		errors.Is(err, texasholdem.ErrGameOver) ||
		errors.Is(err, texasholdem.ErrPlayerNotFound) ||
		errors.Is(err, texasholdem.ErrHandInProgress) ||
		errors.Is(err, store.ErrGameNotFound) ||
		errors.Is(err, store.ErrStaleSnapshot) ||
		errors.Is(err, ErrNotSeated)
}

func newErrorResponse(ctx string, err error) *Response {
	msg := "internal server error"
	if IsUserError(err) {
		msg = err.Error()
	}

	return &Response{
		Key:     "error",
		Value:   msg,
		Context: ctx,
	}
}
