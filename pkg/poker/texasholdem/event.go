package texasholdem

import (
	"fmt"
	"github.com/google/uuid"
	"texasholdem-server/pkg/deck"
	"time"
)

// now is swapped out by tests that need a fixed clock
var now = time.Now

// Event is a notification produced by the engine
// If PlayerIDs is empty, it's a general statement, otherwise "{}" in the message is substituted with the player(s)
type Event struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []int64   `json:"playerIds"`
	Cards     deck.Hand `json:"cards"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

func newEvent(playerIDs []int64, cards deck.Hand, format string, a ...interface{}) *Event {
	if playerIDs == nil {
		playerIDs = []int64{}
	}

	return &Event{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      now(),
	}
}

func playerEvent(playerID int64, format string, a ...interface{}) *Event {
	return newEvent([]int64{playerID}, nil, format, a...)
}
