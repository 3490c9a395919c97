package texasholdem

import (
	"fmt"
	"texasholdem-server/pkg/deck"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/handanalyzer"
	"texasholdem-server/pkg/poker/potmanager"
	"time"
)

// NoTurn is the value of Table.CurrentTurn when nobody can act
const NoTurn = -1

// Player is a seat at the table
type Player struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
	Chips    int   `json:"chips"`
	// Bet is the amount put in during the current betting round
	Bet int `json:"bet"`
	// PotContribution is the amount put in during the whole hand
	PotContribution int       `json:"potContribution"`
	HoleCards       deck.Hand `json:"holeCards"`
	InHand          bool      `json:"inHand"`
	IsAllIn         bool      `json:"isAllIn"`
	HasActed        bool      `json:"hasActed"`

	BestHand     deck.Hand             `json:"bestHand,omitempty"`
	HandCategory handanalyzer.Category `json:"handCategory,omitempty"`
	AmountWon    int                   `json:"amountWon"`
}

// canAct returns true if the player still has decisions to make this hand
func (p *Player) canAct() bool {
	return p.InHand && !p.IsAllIn && p.Chips > 0
}

// commit moves chips from the player's stack into their bet
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.PotContribution += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}

func (p *Player) clone() *Player {
	c := *p
	c.HoleCards = p.HoleCards.Clone()
	c.BestHand = p.BestHand.Clone()
	return &c
}

// LastAction is the most recent action applied to the table
type LastAction struct {
	PlayerID int64         `json:"playerId"`
	Action   action.Action `json:"action"`
	Amount   int           `json:"amount"`
}

// Table is the state of a single hand of Texas Hold'em
type Table struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HandNumber int    `json:"handNumber"`
	// Version is incremented by the store on every save
	Version int64 `json:"version"`

	// Players are indexed by position
	Players        []*Player `json:"players"`
	CommunityCards deck.Hand `json:"communityCards"`
	Deck           deck.Deck `json:"deck"`

	Pot            int `json:"pot"`
	HighestBet     int `json:"highestBet"`
	MinRaiseAmount int `json:"minRaiseAmount"`
	SmallBlind     int `json:"smallBlind"`
	BigBlind       int `json:"bigBlind"`

	CurrentTurn        int   `json:"currentTurn"`
	Stage              Stage `json:"stage"`
	SmallBlindPosition int   `json:"smallBlindPosition"`
	EnforceMinRaise    bool  `json:"enforceMinRaise"`

	BettingStarted    bool       `json:"bettingStarted"`
	GameInProgress    bool       `json:"gameInProgress"`
	GameOverTimestamp *time.Time `json:"gameOverTimestamp,omitempty"`

	// Showdown is true if the hand ended with the remaining hands revealed
	Showdown   bool            `json:"showdown"`
	Pots       potmanager.Pots `json:"pots,omitempty"`
	NetWinners []int64         `json:"netWinners"`
	LastAction *LastAction     `json:"lastAction,omitempty"`
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	c := *t

	c.Players = make([]*Player, len(t.Players))
	for i, p := range t.Players {
		c.Players[i] = p.clone()
	}

	c.CommunityCards = t.CommunityCards.Clone()
	c.Deck = t.Deck.Clone()

	if t.GameOverTimestamp != nil {
		ts := *t.GameOverTimestamp
		c.GameOverTimestamp = &ts
	}

	if t.Pots != nil {
		c.Pots = make(potmanager.Pots, len(t.Pots))
		for i, pot := range t.Pots {
			p := *pot
			p.Eligible = append([]int64(nil), pot.Eligible...)
			p.Winners = append([]int64(nil), pot.Winners...)
			c.Pots[i] = &p
		}
	}

	if t.NetWinners != nil {
		c.NetWinners = append([]int64{}, t.NetWinners...)
	}

	if t.LastAction != nil {
		la := *t.LastAction
		c.LastAction = &la
	}

	return &c
}

// PlayerByID returns the player seated with the ID
func (t *Table) PlayerByID(id int64) (*Player, error) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrPlayerNotFound, id)
}

// CurrentPlayer returns the player whose turn it is, or nil if nobody can act
func (t *Table) CurrentPlayer() *Player {
	if t.CurrentTurn < 0 || t.CurrentTurn >= len(t.Players) {
		return nil
	}

	return t.Players[t.CurrentTurn]
}

// TotalChips returns the chips in play, which is constant for the whole hand
// In-round bets are already counted in the pot
func (t *Table) TotalChips() int {
	total := t.Pot
	for _, p := range t.Players {
		total += p.Chips
	}

	return total
}

func (t *Table) inHandPlayers() []*Player {
	players := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.InHand {
			players = append(players, p)
		}
	}

	return players
}

// nextEligiblePosition scans forward from start (inclusive) for a player who can act
func (t *Table) nextEligiblePosition(start int) int {
	n := len(t.Players)
	for i := 0; i < n; i++ {
		pos := ((start+i)%n + n) % n
		if t.Players[pos].canAct() {
			return pos
		}
	}

	return NoTurn
}

// ActionsFor returns the actions the player can currently take
func (t *Table) ActionsFor(playerID int64) []action.Action {
	if !t.Stage.IsBettingRound() {
		return nil
	}

	p := t.CurrentPlayer()
	if p == nil || p.ID != playerID {
		return nil
	}

	actions := make([]action.Action, 0, 3)
	owed := t.HighestBet - p.Bet
	if owed <= 0 {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if p.Chips > owed {
		actions = append(actions, action.Raise)
	}

	return append(actions, action.Fold)
}
