package texasholdem

import (
	"fmt"
)

// Stage is the phase of the hand
// Stages only move forward and StageGameOver is terminal
type Stage int

// constants for Stage
const (
	StagePreDealing Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageGameOver
)

var stageNames = map[Stage]string{
	StagePreDealing: "preDealing",
	StagePreFlop:    "preFlop",
	StageFlop:       "flop",
	StageTurn:       "turn",
	StageRiver:      "river",
	StageGameOver:   "gameOver",
}

func (s Stage) String() string {
	return stageNames[s]
}

// IsBettingRound returns true if players can act in this stage
func (s Stage) IsBettingRound() bool {
	return s >= StagePreFlop && s <= StageRiver
}

// cardsToDeal is the number of community cards dealt when entering the stage
func (s Stage) cardsToDeal() int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn, StageRiver:
		return 1
	}

	return 0
}

// MarshalText encodes the stage by name
func (s Stage) MarshalText() ([]byte, error) {
	name, ok := stageNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown stage: %d", int(s))
	}

	return []byte(name), nil
}

// UnmarshalText decodes the stage from its name
func (s *Stage) UnmarshalText(b []byte) error {
	for stage, name := range stageNames {
		if name == string(b) {
			*s = stage
			return nil
		}
	}

	return fmt.Errorf("unknown stage: %s", string(b))
}
