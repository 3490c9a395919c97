package deck

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"texasholdem-server/internal/rng"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, deck.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades}, deck.Cards[51])

	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		assert.False(t, seen[card], "duplicate %s", card)
		seen[card] = true
	}
}

func TestNewShuffled(t *testing.T) {
	a := assert.New(t)

	unshuffled := New().HashCode()

	d1 := NewShuffled(rng.NewSeeded(1))
	d2 := NewShuffled(rng.NewSeeded(1))
	d3 := NewShuffled(rng.NewSeeded(2))

	a.Equal(52, d1.CardsLeft())
	a.Equal(d1.HashCode(), d2.HashCode())
	a.NotEqual(d1.HashCode(), d3.HashCode())
	a.NotEqual(unshuffled, d1.HashCode())

	// still a permutation of the full deck
	seen := make(map[Card]bool)
	for _, card := range d1.Cards {
		seen[card] = true
	}
	a.Equal(52, len(seen))
}

func TestDeck_Deal(t *testing.T) {
	a := assert.New(t)
	deck := New()

	a.True(deck.CanDraw(52))
	a.False(deck.CanDraw(53))

	cards, err := deck.Deal(3)
	a.NoError(err)
	a.Equal("2c,3c,4c", CardsToString(cards))
	a.Equal(49, deck.CardsLeft())
	a.Equal(Card{Rank: 5, Suit: Clubs}, deck.Cards[0])

	cards, err = deck.Deal(50)
	a.Nil(cards)
	a.True(errors.Is(err, ErrInsufficientCards))
	a.EqualError(err, "insufficient cards left in the deck: wanted 50, have 49")
	a.Equal(49, deck.CardsLeft(), "failed deal must not remove cards")

	cards, err = deck.Deal(49)
	a.NoError(err)
	a.Equal(49, len(cards))
	a.Equal(0, deck.CardsLeft())

	_, err = deck.Deal(1)
	a.True(errors.Is(err, ErrInsufficientCards))

	_, err = deck.Deal(-1)
	a.Error(err)
}

func TestDeck_Clone(t *testing.T) {
	d := New()
	clone := d.Clone()
	_, _ = clone.Deal(5)

	assert.Equal(t, 52, d.CardsLeft())
	assert.Equal(t, 47, clone.CardsLeft())

	clone.Cards[0] = Card{Rank: 2, Suit: Clubs}
	assert.Equal(t, Card{Rank: 7, Suit: Clubs}, d.Cards[5])
}
