package potmanager

import (
	"errors"
	"fmt"
	"sort"
	"texasholdem-server/pkg/poker/handanalyzer"
)

// ErrNoContenders is an error when a pot is settled without anyone left to win it
var ErrNoContenders = errors.New("no players left to win the pot")

// ErrChipsNotConserved is an error when settlement would pay out a different amount than was contributed
var ErrChipsNotConserved = errors.New("settlement does not conserve chips")

// Contender is a player's stake in the hand
type Contender struct {
	PlayerID int64
	// Position is the seat, used to pay odd chips in seat order
	Position     int
	Contribution int
	// Folded players contribute dead money but cannot win
	Folded bool
	// Hand is ignored for folded players
	Hand handanalyzer.Hand
}

// Result is the outcome of a settlement
type Result struct {
	Pots     Pots          `json:"pots"`
	Winnings map[int64]int `json:"winnings"`
	// NetWinners won more than they put in, in seat order
	NetWinners []int64 `json:"netWinners"`
	// OddChips is the total of the remainders left after splitting tied pots
	OddChips int `json:"oddChips"`
}

// Settle splits the contributions into main and side pots and pays each pot to its best hand(s)
//
// Every pot is capped at the smallest remaining contribution among the players who can still win. Each
// player, folded or not, pays into the pot up to that cap. The remainders of tied splits are shared among
// the net winners in seat order, starting at firstSeat. If there are no net winners, they go to the first
// winner of the pot that produced them.
func Settle(contenders []Contender, firstSeat int) (*Result, error) {
	seated := make([]Contender, len(contenders))
	copy(seated, contenders)
	sortBySeat(seated, firstSeat)

	remaining := make(map[int64]int, len(seated))
	totalIn := 0
	for _, c := range seated {
		if c.Contribution < 0 {
			return nil, fmt.Errorf("player %d has a negative contribution", c.PlayerID)
		}

		remaining[c.PlayerID] = c.Contribution
		totalIn += c.Contribution
	}

	result := &Result{
		Pots:       make(Pots, 0),
		Winnings:   make(map[int64]int, len(seated)),
		NetWinners: make([]int64, 0),
	}

	for _, c := range seated {
		result.Winnings[c.PlayerID] = 0
	}

	if totalIn == 0 {
		return result, nil
	}

	// the first winner in seat order of a pot that left odd chips
	oddChipWinner := int64(0)
	hasOddChipWinner := false
	level := 0

	for {
		active := make([]Contender, 0, len(seated))
		for _, c := range seated {
			if !c.Folded && remaining[c.PlayerID] > 0 {
				active = append(active, c)
			}
		}

		if len(active) == 0 {
			break
		}

		step := remaining[active[0].PlayerID]
		for _, c := range active[1:] {
			if r := remaining[c.PlayerID]; r < step {
				step = r
			}
		}

		amount := 0
		for _, c := range seated {
			take := remaining[c.PlayerID]
			if take > step {
				take = step
			}

			amount += take
			remaining[c.PlayerID] -= take
		}

		// once no one who can win has chips left in play, sweep the dead money into this pot
		if !hasActiveRemaining(seated, remaining) {
			for _, c := range seated {
				amount += remaining[c.PlayerID]
				remaining[c.PlayerID] = 0
			}
		}

		level += step

		wm := NewWinManager()
		eligible := make([]int64, len(active))
		for i, c := range active {
			eligible[i] = c.PlayerID
			wm.AddParticipant(c.PlayerID, c.Hand.Strength())
		}

		winners := wm.GetSortedTiers()[0]
		share := amount / len(winners)
		for _, id := range winners {
			result.Winnings[id] += share
		}

		if odd := amount % len(winners); odd > 0 {
			result.OddChips += odd
			if !hasOddChipWinner {
				oddChipWinner = winners[0]
				hasOddChipWinner = true
			}
		}

		result.Pots = append(result.Pots, &Pot{
			Amount:   amount,
			Level:    level,
			Eligible: eligible,
			Winners:  winners,
		})
	}

	if len(result.Pots) == 0 {
		return nil, ErrNoContenders
	}

	if result.OddChips > 0 {
		netWinners := netWinners(seated, result.Winnings)
		if n := len(netWinners); n > 0 {
			share := result.OddChips / n
			leftover := result.OddChips % n
			for i, id := range netWinners {
				result.Winnings[id] += share
				if i < leftover {
					result.Winnings[id]++
				}
			}
		} else {
			result.Winnings[oddChipWinner] += result.OddChips
		}
	}

	result.NetWinners = netWinners(seated, result.Winnings)

	totalOut := 0
	for _, won := range result.Winnings {
		totalOut += won
	}

	if totalOut != totalIn {
		return nil, fmt.Errorf("%w: %d contributed, %d paid", ErrChipsNotConserved, totalIn, totalOut)
	}

	return result, nil
}

func hasActiveRemaining(seated []Contender, remaining map[int64]int) bool {
	for _, c := range seated {
		if !c.Folded && remaining[c.PlayerID] > 0 {
			return true
		}
	}

	return false
}

func netWinners(seated []Contender, winnings map[int64]int) []int64 {
	ids := make([]int64, 0)
	for _, c := range seated {
		if winnings[c.PlayerID]-c.Contribution > 0 {
			ids = append(ids, c.PlayerID)
		}
	}

	return ids
}

// sortBySeat orders contenders clockwise starting at firstSeat
func sortBySeat(contenders []Contender, firstSeat int) {
	maxPosition := 0
	for _, c := range contenders {
		if c.Position > maxPosition {
			maxPosition = c.Position
		}
	}

	n := maxPosition + 1
	distance := func(position int) int {
		return ((position-firstSeat)%n + n) % n
	}

	sort.SliceStable(contenders, func(i, j int) bool {
		return distance(contenders[i].Position) < distance(contenders[j].Position)
	})
}
