package texasholdem

import (
	"texasholdem-server/pkg/deck"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/handanalyzer"
	"texasholdem-server/pkg/poker/potmanager"
	"time"
)

// PlayerView is a player as seen by someone at the table
type PlayerView struct {
	ID              int64                 `json:"id"`
	Position        int                   `json:"position"`
	Chips           int                   `json:"chips"`
	Bet             int                   `json:"bet"`
	PotContribution int                   `json:"potContribution"`
	HoleCards       deck.Hand             `json:"holeCards"`
	InHand          bool                  `json:"inHand"`
	IsAllIn         bool                  `json:"isAllIn"`
	BestHand        deck.Hand             `json:"bestHand,omitempty"`
	HandCategory    handanalyzer.Category `json:"handCategory,omitempty"`
	AmountWon       int                   `json:"amountWon"`
}

// View is the state of the table as seen by a single player
// Only the viewer's hole cards are visible until showdown
type View struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	HandNumber         int             `json:"handNumber"`
	Players            []*PlayerView   `json:"players"`
	CommunityCards     deck.Hand       `json:"communityCards"`
	Pot                int             `json:"pot"`
	HighestBet         int             `json:"highestBet"`
	MinRaiseAmount     int             `json:"minRaiseAmount"`
	SmallBlind         int             `json:"smallBlind"`
	BigBlind           int             `json:"bigBlind"`
	CurrentTurn        int             `json:"currentTurn"`
	Stage              Stage           `json:"stage"`
	SmallBlindPosition int             `json:"smallBlindPosition"`
	GameInProgress     bool            `json:"gameInProgress"`
	GameOverTimestamp  *time.Time      `json:"gameOverTimestamp,omitempty"`
	Pots               potmanager.Pots `json:"pots,omitempty"`
	NetWinners         []int64         `json:"netWinners"`
	LastAction         *LastAction     `json:"lastAction,omitempty"`
	Actions            []action.Action `json:"actions"`
}

// ViewFor returns the table as seen by the player
// A viewer ID that is not seated sees no hole cards
func (t *Table) ViewFor(viewerID int64) *View {
	players := make([]*PlayerView, len(t.Players))
	for i, p := range t.Players {
		pv := &PlayerView{
			ID:              p.ID,
			Position:        p.Position,
			Chips:           p.Chips,
			Bet:             p.Bet,
			PotContribution: p.PotContribution,
			HoleCards:       deck.Hand{},
			InHand:          p.InHand,
			IsAllIn:         p.IsAllIn,
			AmountWon:       p.AmountWon,
		}

		if p.ID == viewerID || (t.Showdown && p.InHand) {
			pv.HoleCards = p.HoleCards.Clone()
			pv.BestHand = p.BestHand.Clone()
			pv.HandCategory = p.HandCategory
		}

		players[i] = pv
	}

	actions := t.ActionsFor(viewerID)
	if actions == nil {
		actions = []action.Action{}
	}

	c := t.Clone()
	return &View{
		ID:                 c.ID,
		Name:               c.Name,
		HandNumber:         c.HandNumber,
		Players:            players,
		CommunityCards:     c.CommunityCards,
		Pot:                c.Pot,
		HighestBet:         c.HighestBet,
		MinRaiseAmount:     c.MinRaiseAmount,
		SmallBlind:         c.SmallBlind,
		BigBlind:           c.BigBlind,
		CurrentTurn:        c.CurrentTurn,
		Stage:              c.Stage,
		SmallBlindPosition: c.SmallBlindPosition,
		GameInProgress:     c.GameInProgress,
		GameOverTimestamp:  c.GameOverTimestamp,
		Pots:               c.Pots,
		NetWinners:         c.NetWinners,
		LastAction:         c.LastAction,
		Actions:            actions,
	}
}
