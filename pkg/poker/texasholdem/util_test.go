package texasholdem

import (
	"github.com/stretchr/testify/assert"
	"texasholdem-server/internal/rng"
	"texasholdem-server/pkg/deck"
	"texasholdem-server/pkg/poker/action"
	"testing"
	"time"
)

var fixedTime = time.Date(2020, 6, 1, 20, 0, 0, 0, time.UTC)

func init() {
	now = func() time.Time {
		return fixedTime
	}
}

// setupTable seats players 1..n with the stacks, small blind at position 0
func setupTable(t *testing.T, smallBlind, bigBlind int, stacks ...int) *Table {
	t.Helper()

	seats := make([]Seat, len(stacks))
	for i, chips := range stacks {
		seats[i] = Seat{ID: int64(i + 1), Chips: chips}
	}

	table, _, err := NewTable("table-1", seats, Options{
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
	}, rng.NewSeeded(1))
	if err != nil {
		t.Fatal(err)
	}

	return table
}

// rigCards replaces the hole cards, and the deck with the cards still to come
func rigCards(table *Table, remaining string, holeCards ...string) {
	for i, cards := range holeCards {
		table.Players[i].HoleCards = deck.CardsFromString(cards)
	}

	table.Deck = deck.Deck{Cards: deck.CardsFromString(remaining)}
}

func assertAction(t *testing.T, table *Table, playerID int64, a action.Action, msgAndArgs ...interface{}) *Table {
	t.Helper()
	return assertActionAndAmount(t, table, playerID, a, 0, msgAndArgs...)
}

func assertActionAndAmount(t *testing.T, table *Table, playerID int64, a action.Action, amount int, msgAndArgs ...interface{}) *Table {
	t.Helper()

	before := table.Clone()
	next, events, err := Apply(table, playerID, a, amount)
	if !assert.NoError(t, err, msgAndArgs...) {
		t.FailNow()
	}

	assert.NotEmpty(t, events, msgAndArgs...)
	assert.Equal(t, before, table, "input table must not change")
	assert.Equal(t, before.TotalChips(), next.TotalChips(), "chips must be conserved")

	return next
}

func assertActionFailedAndAmount(t *testing.T, table *Table, playerID int64, a action.Action, amount int, expectedErr string, msgAndArgs ...interface{}) {
	t.Helper()

	before := table.Clone()
	next, events, err := Apply(table, playerID, a, amount)
	assert.EqualError(t, err, expectedErr, msgAndArgs...)
	assert.Nil(t, next, msgAndArgs...)
	assert.Nil(t, events, msgAndArgs...)
	assert.Equal(t, before, table, "input table must not change")
}

func assertActionFailed(t *testing.T, table *Table, playerID int64, a action.Action, expectedErr string, msgAndArgs ...interface{}) {
	t.Helper()
	assertActionFailedAndAmount(t, table, playerID, a, 0, expectedErr, msgAndArgs...)
}

func assertCurrentTurn(t *testing.T, table *Table, playerID int64, msgAndArgs ...interface{}) {
	t.Helper()

	p := table.CurrentPlayer()
	if assert.NotNil(t, p, msgAndArgs...) {
		assert.Equal(t, playerID, p.ID, msgAndArgs...)
	}
}

func chips(table *Table) []int {
	c := make([]int, len(table.Players))
	for i, p := range table.Players {
		c[i] = p.Chips
	}

	return c
}
