package potmanager

import (
	"sort"
)

type tier struct {
	strength     int
	participants []int64
}

// WinManager groups participants into tiers of equal hand strength
type WinManager map[int]*tier

// NewWinManager returns an empty WinManager
func NewWinManager() WinManager {
	return make(WinManager)
}

// AddParticipant files the participant under its hand strength
func (w WinManager) AddParticipant(id int64, handStrength int) {
	t, ok := w[handStrength]
	if !ok {
		t = &tier{
			strength:     handStrength,
			participants: make([]int64, 0),
		}
	}

	t.participants = append(t.participants, id)
	w[handStrength] = t
}

// GetSortedTiers returns the participants grouped by strength, strongest first
// Participants within a tier keep the order they were added in
func (w WinManager) GetSortedTiers() [][]int64 {
	tiers := make([]*tier, 0, len(w))
	for _, tier := range w {
		tiers = append(tiers, tier)
	}

	sort.Sort(sort.Reverse(sortByStrength(tiers)))

	tieredParticipants := make([][]int64, len(tiers))
	for i, t := range tiers {
		tieredParticipants[i] = t.participants
	}

	return tieredParticipants
}

type sortByStrength []*tier

func (s sortByStrength) Len() int {
	return len(s)
}

func (s sortByStrength) Less(i, j int) bool {
	return s[i].strength < s[j].strength
}

func (s sortByStrength) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
