package texasholdem

import (
	"fmt"
	"github.com/google/uuid"
	"texasholdem-server/internal/rng"
	"texasholdem-server/pkg/deck"
)

// MaxPlayers is the most players a single deck can deal to
const MaxPlayers = (52 - 5) / 2

// MaxChips is the largest stack a player can bring to the table
// It keeps every sum of bets and stacks well inside an int
const MaxChips = 1_000_000_000_000

// Seat is a player joining a hand
type Seat struct {
	ID    int64 `json:"id"`
	Chips int   `json:"chips"`
}

// Options configures a hand
type Options struct {
	SmallBlind         int `json:"smallBlind"`
	BigBlind           int `json:"bigBlind"`
	SmallBlindPosition int `json:"smallBlindPosition"`
	// EnforceMinRaise rejects raises smaller than the current minimum unless the player is going all-in
	EnforceMinRaise bool `json:"enforceMinRaise"`
}

// DefaultOptions returns the default options for a hand
func DefaultOptions() Options {
	return Options{
		SmallBlind:         25,
		BigBlind:           50,
		SmallBlindPosition: 0,
	}
}

func validateOptions(seats []Seat, opts Options) error {
	if len(seats) < 2 {
		return OptionsError("there must be at least two players")
	}

	if len(seats) > MaxPlayers {
		return OptionsError(fmt.Sprintf("there cannot be more than %d players", MaxPlayers))
	}

	if opts.SmallBlind <= 0 {
		return OptionsError("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return OptionsError("big blind must be at least the small blind")
	}

	if opts.SmallBlindPosition < 0 || opts.SmallBlindPosition >= len(seats) {
		return OptionsError(fmt.Sprintf("small blind position %d is not a seat", opts.SmallBlindPosition))
	}

	seen := make(map[int64]bool, len(seats))
	for _, seat := range seats {
		if seen[seat.ID] {
			return OptionsError(fmt.Sprintf("player %d is seated more than once", seat.ID))
		}

		if seat.Chips <= 0 {
			return OptionsError(fmt.Sprintf("player %d has no chips", seat.ID))
		}

		if seat.Chips > MaxChips {
			return OptionsError(fmt.Sprintf("player %d has more than %d chips", seat.ID, MaxChips))
		}

		seen[seat.ID] = true
	}

	return nil
}

// NewTable shuffles, posts the blinds and deals the hole cards
// If id is empty, a new one is generated
func NewTable(id string, seats []Seat, opts Options, gen rng.Generator) (*Table, []*Event, error) {
	return newTable(id, 1, seats, opts, gen)
}

func newTable(id string, handNumber int, seats []Seat, opts Options, gen rng.Generator) (*Table, []*Event, error) {
	if err := validateOptions(seats, opts); err != nil {
		return nil, nil, err
	}

	if id == "" {
		id = uuid.New().String()
	}

	players := make([]*Player, len(seats))
	for i, seat := range seats {
		players[i] = &Player{
			ID:        seat.ID,
			Position:  i,
			Chips:     seat.Chips,
			HoleCards: make(deck.Hand, 0, 2),
			InHand:    true,
		}
	}

	t := &Table{
		ID:                 id,
		HandNumber:         handNumber,
		Players:            players,
		CommunityCards:     make(deck.Hand, 0, 5),
		Deck:               deck.NewShuffled(gen),
		MinRaiseAmount:     opts.BigBlind,
		SmallBlind:         opts.SmallBlind,
		BigBlind:           opts.BigBlind,
		CurrentTurn:        NoTurn,
		Stage:              StagePreDealing,
		SmallBlindPosition: opts.SmallBlindPosition,
		EnforceMinRaise:    opts.EnforceMinRaise,
		GameInProgress:     true,
		NetWinners:         []int64{},
	}

	events, err := t.start()
	if err != nil {
		return nil, nil, err
	}

	return t, events, nil
}

// start posts the blinds, deals two cards to each player and opens pre-flop betting
func (t *Table) start() ([]*Event, error) {
	n := len(t.Players)
	sb := t.Players[t.SmallBlindPosition]
	bb := t.Players[(t.SmallBlindPosition+1)%n]

	events := make([]*Event, 0, 4)
	for _, blind := range []struct {
		player *Player
		amount int
		name   string
	}{
		{sb, t.SmallBlind, "small"},
		{bb, t.BigBlind, "big"},
	} {
		amount := blind.amount
		if amount > blind.player.Chips {
			amount = blind.player.Chips
		}

		blind.player.commit(amount)
		t.Pot += amount
		events = append(events, playerEvent(blind.player.ID, "{} posted the %s blind of ${%d}", blind.name, amount))
	}

	t.HighestBet = t.BigBlind

	for i := 0; i < 2; i++ {
		for j := 0; j < n; j++ {
			p := t.Players[(t.SmallBlindPosition+j)%n]
			cards, err := t.Deck.Deal(1)
			if err != nil {
				return nil, fmt.Errorf("could not deal hole cards: %w", err)
			}

			p.HoleCards.AddCard(cards...)
		}
	}

	t.Stage = StagePreFlop
	t.CurrentTurn = t.nextEligiblePosition(bb.Position + 1)
	events = append(events, newEvent(nil, nil, "Hand #%d has started", t.HandNumber))

	if t.allInShortCircuit() {
		more, err := t.revealAndSettle()
		if err != nil {
			return nil, err
		}

		events = append(events, more...)
	}

	return events, nil
}

// NextHand starts a new hand at the same table with the chip stacks carried over
// Busted players are dropped and the small blind moves to the next player with chips
func NextHand(t *Table, gen rng.Generator) (*Table, []*Event, error) {
	if t.Stage != StageGameOver {
		return nil, nil, ErrHandInProgress
	}

	n := len(t.Players)
	nextSmallBlind := NoTurn
	for i := 1; i <= n; i++ {
		if p := t.Players[(t.SmallBlindPosition+i)%n]; p.Chips > 0 {
			nextSmallBlind = p.Position
			break
		}
	}

	seats := make([]Seat, 0, n)
	opts := Options{
		SmallBlind:      t.SmallBlind,
		BigBlind:        t.BigBlind,
		EnforceMinRaise: t.EnforceMinRaise,
	}

	for _, p := range t.Players {
		if p.Chips <= 0 {
			continue
		}

		if p.Position == nextSmallBlind {
			opts.SmallBlindPosition = len(seats)
		}

		seats = append(seats, Seat{ID: p.ID, Chips: p.Chips})
	}

	if len(seats) < 2 {
		return nil, nil, OptionsError("there must be at least two players with chips")
	}

	next, events, err := newTable(t.ID, t.HandNumber+1, seats, opts, gen)
	if err != nil {
		return nil, nil, err
	}

	next.Name = t.Name
	next.Version = t.Version
	return next, events, nil
}
