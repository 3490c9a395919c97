package texasholdem

import (
	"fmt"
	"texasholdem-server/pkg/deck"
	"texasholdem-server/pkg/poker/handanalyzer"
	"texasholdem-server/pkg/poker/potmanager"
)

// settle pays out the pot and ends the hand
// If showdown is false, the hand was won by everyone else folding and no hands are evaluated
func (t *Table) settle(showdown bool) ([]*Event, error) {
	events := make([]*Event, 0)
	contenders := make([]potmanager.Contender, len(t.Players))
	contributed := 0
	for i, p := range t.Players {
		contributed += p.PotContribution
		contenders[i] = potmanager.Contender{
			PlayerID:     p.ID,
			Position:     p.Position,
			Contribution: p.PotContribution,
			Folded:       !p.InHand,
		}

		if !showdown || !p.InHand {
			continue
		}

		cards := append(p.HoleCards.Clone(), t.CommunityCards...)
		hand, err := handanalyzer.EvaluateBestHand(cards)
		if err != nil {
			return nil, fmt.Errorf("%w: could not evaluate hand of player %d: %v", ErrInvariantViolation, p.ID, err)
		}

		p.BestHand = hand.Cards
		p.HandCategory = hand.Category
		contenders[i].Hand = hand

		events = append(events, newEvent([]int64{p.ID}, append(deck.Hand{}, p.HoleCards...), "{} shows %s", hand.Category))
	}

	if contributed != t.Pot {
		return nil, fmt.Errorf("%w: pot is ${%d} but players contributed ${%d}", ErrInvariantViolation, t.Pot, contributed)
	}

	result, err := potmanager.Settle(contenders, t.SmallBlindPosition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	for _, p := range t.Players {
		won := result.Winnings[p.ID]
		p.AmountWon = won
		p.Chips += won
		p.Bet = 0

		if won > 0 {
			events = append(events, playerEvent(p.ID, "{} won ${%d}", won))
		}
	}

	ts := now()
	t.Pot = 0
	t.HighestBet = 0
	t.BettingStarted = false
	t.Pots = result.Pots
	t.NetWinners = result.NetWinners
	t.Showdown = showdown
	t.Stage = StageGameOver
	t.GameInProgress = false
	t.GameOverTimestamp = &ts
	t.CurrentTurn = NoTurn

	return events, nil
}
