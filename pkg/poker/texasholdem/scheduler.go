package texasholdem

import (
	"fmt"
)

// schedule runs after every applied action
// It ends the hand, advances the stage or passes the turn to the next player
func (t *Table) schedule() ([]*Event, error) {
	inHand := t.inHandPlayers()
	if len(inHand) == 1 {
		return t.settle(false)
	}

	if t.allInShortCircuit() {
		return t.revealAndSettle()
	}

	if !t.isBettingComplete() {
		t.advanceTurn()
		return nil, nil
	}

	return t.advanceStage()
}

// allInShortCircuit returns true if no more betting is possible
// That is when everyone in the hand is all-in, or only one player isn't and they've matched the bet
func (t *Table) allInShortCircuit() bool {
	var canAct *Player
	for _, p := range t.inHandPlayers() {
		if !p.canAct() {
			continue
		}

		if canAct != nil {
			return false
		}

		canAct = p
	}

	return canAct == nil || canAct.Bet == t.HighestBet
}

// isBettingComplete returns true if everyone who can act has matched the highest bet and has acted
// The big blind has not acted until it checks or raises, so pre-flop cannot close on the blinds alone
func (t *Table) isBettingComplete() bool {
	for _, p := range t.Players {
		if !p.canAct() {
			continue
		}

		if p.Bet != t.HighestBet || !p.HasActed {
			return false
		}
	}

	return true
}

// advanceTurn moves to the next seat that can act, wrapping around the table
func (t *Table) advanceTurn() {
	t.CurrentTurn = t.nextEligiblePosition(t.CurrentTurn + 1)
}

// advanceStage resets the round and deals the next street, or settles after the river
func (t *Table) advanceStage() ([]*Event, error) {
	for _, p := range t.Players {
		p.Bet = 0
		p.HasActed = !p.InHand
	}

	t.HighestBet = 0
	t.BettingStarted = false
	t.MinRaiseAmount = t.BigBlind

	if t.Stage == StageRiver {
		return t.settle(true)
	}

	t.Stage++
	cards, err := t.Deck.Deal(t.Stage.cardsToDeal())
	if err != nil {
		return nil, fmt.Errorf("could not deal the %s: %w", t.Stage, err)
	}

	t.CommunityCards.AddCard(cards...)
	t.CurrentTurn = t.nextEligiblePosition(t.SmallBlindPosition)

	return []*Event{newEvent(nil, cards, "Dealt the %s", t.Stage)}, nil
}

// revealAndSettle deals the rest of the community cards and goes to showdown
func (t *Table) revealAndSettle() ([]*Event, error) {
	events := make([]*Event, 0)
	if remaining := 5 - len(t.CommunityCards); remaining > 0 {
		cards, err := t.Deck.Deal(remaining)
		if err != nil {
			return nil, fmt.Errorf("could not reveal the community cards: %w", err)
		}

		t.CommunityCards.AddCard(cards...)
		events = append(events, newEvent(nil, cards, "No more betting is possible, revealed the remaining cards"))
	}

	more, err := t.settle(true)
	if err != nil {
		return nil, err
	}

	return append(events, more...), nil
}
