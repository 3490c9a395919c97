package potmanager

// Pot is a main pot or side pot
type Pot struct {
	Amount int `json:"amount"`
	// Level is the cumulative contribution a player needed to be eligible for this pot
	Level    int     `json:"level"`
	Eligible []int64 `json:"eligible"`
	Winners  []int64 `json:"winners"`
}

// Pots is a collection of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
