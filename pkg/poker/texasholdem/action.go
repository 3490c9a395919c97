package texasholdem

import (
	"fmt"
	"texasholdem-server/pkg/poker/action"
)

// Apply applies a player's action and runs the scheduler
// The table passed in is never modified. On success, the new table and the events produced are returned
func Apply(t *Table, playerID int64, a action.Action, amount int) (*Table, []*Event, error) {
	if t.Stage == StageGameOver {
		return nil, nil, ErrGameOver
	}

	if !t.Stage.IsBettingRound() {
		return nil, nil, InvalidActionError("the cards have not been dealt")
	}

	p, err := t.PlayerByID(playerID)
	if err != nil {
		return nil, nil, err
	}

	if p.Position != t.CurrentTurn {
		return nil, nil, ErrNotPlayersTurn
	}

	if err := t.validateAction(p, a, amount); err != nil {
		return nil, nil, err
	}

	// nobody can be asked to match more than every chip at the table
	if a == action.Raise && amount > t.TotalChips() {
		amount = t.TotalChips()
	}

	next := t.Clone()
	np := next.Players[p.Position]

	var event *Event
	switch a {
	case action.Raise:
		event = next.applyRaise(np, amount)
	case action.Call:
		event = next.applyCall(np)
	case action.Check:
		event = next.applyCheck(np)
	case action.Fold:
		event = next.applyFold(np)
	}

	next.LastAction = &LastAction{
		PlayerID: playerID,
		Action:   a,
		Amount:   amount,
	}

	events, err := next.schedule()
	if err != nil {
		return nil, nil, err
	}

	if err := next.checkChips(t.TotalChips()); err != nil {
		return nil, nil, fmt.Errorf("%w after %s", err, a)
	}

	return next, append([]*Event{event}, events...), nil
}

func (t *Table) validateAction(p *Player, a action.Action, amount int) error {
	owed := t.HighestBet - p.Bet

	switch a {
	case action.Raise:
		if amount < 0 {
			return newInvalidActionError("raise amount of ${%d} cannot be negative", amount)
		}

		// a raise that covers the rest of the stack is an all-in
		if amount >= p.Chips-owed {
			return nil
		}

		if t.EnforceMinRaise && amount < t.MinRaiseAmount {
			return newInvalidActionError("your raise of ${%d} must be at least ${%d}", amount, t.MinRaiseAmount)
		}
	case action.Call:
		if owed <= 0 {
			return InvalidActionError("you cannot call without an active bet")
		}
	case action.Check:
		if owed > 0 {
			return InvalidActionError("you cannot check with an active bet")
		}
	case action.Fold:
	default:
		return newInvalidActionError("unknown action: %s", a)
	}

	return nil
}

func (t *Table) applyRaise(p *Player, amount int) *Event {
	target := t.HighestBet + amount
	committed := clampCommitment(target-p.Bet, p.Chips)

	p.commit(committed)
	p.HasActed = true
	t.Pot += committed

	// the nominal target stands even when the raise was clamped to the player's stack
	t.HighestBet = target
	t.BettingStarted = true
	if amount > t.MinRaiseAmount {
		t.MinRaiseAmount = amount
	}

	if p.IsAllIn {
		return playerEvent(p.ID, "{} raised all-in to ${%d}", p.Bet)
	}

	return playerEvent(p.ID, "{} %s", action.Raise.LogMessage(p.Bet))
}

func (t *Table) applyCall(p *Player) *Event {
	committed := clampCommitment(t.HighestBet-p.Bet, p.Chips)

	p.commit(committed)
	p.HasActed = true
	t.Pot += committed

	if p.IsAllIn {
		return playerEvent(p.ID, "{} called all-in for ${%d}", committed)
	}

	return playerEvent(p.ID, "{} %s", action.Call.LogMessage(committed))
}

func (t *Table) applyCheck(p *Player) *Event {
	p.HasActed = true
	return playerEvent(p.ID, "{} %s", action.Check.LogMessage(0))
}

func (t *Table) applyFold(p *Player) *Event {
	p.InHand = false
	p.HasActed = true
	return playerEvent(p.ID, "{} %s", action.Fold.LogMessage(0))
}

// clampCommitment bounds what a player puts in to [0, chips]
func clampCommitment(amount, chips int) int {
	if amount < 0 {
		return 0
	}

	if amount > chips {
		return chips
	}

	return amount
}

// checkChips verifies that no chips were created or destroyed and that nothing went negative
func (t *Table) checkChips(before int) error {
	if t.Pot < 0 || t.HighestBet < 0 {
		return fmt.Errorf("%w: pot %d, highest bet %d", ErrInvariantViolation, t.Pot, t.HighestBet)
	}

	for _, p := range t.Players {
		if p.Chips < 0 || p.Bet < 0 {
			return fmt.Errorf("%w: player %d has %d chips and a bet of %d", ErrInvariantViolation, p.ID, p.Chips, p.Bet)
		}
	}

	if after := t.TotalChips(); before != after {
		return fmt.Errorf("%w: %d chips before, %d after", ErrInvariantViolation, before, after)
	}

	return nil
}
