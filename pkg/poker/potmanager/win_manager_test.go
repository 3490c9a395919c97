package potmanager

import (
	"github.com/stretchr/testify/assert"
	"strconv"
	"strings"
	"testing"
)

func TestNewWinManager(t *testing.T) {
	a := assert.New(t)

	wm := NewWinManager()
	wm.AddParticipant(1, 10)
	wm.AddParticipant(2, 20)
	wm.AddParticipant(3, 30)
	wm.AddParticipant(4, 20)
	wm.AddParticipant(5, 30)

	tiers := wm.GetSortedTiers()
	a.Equal("3-5|2-4|1", tiersToString(tiers))
}

func tiersToString(tiers [][]int64) string {
	s := make([]string, len(tiers))
	for i, ids := range tiers {
		parts := make([]string, len(ids))
		for j, id := range ids {
			parts[j] = strconv.FormatInt(id, 10)
		}

		s[i] = strings.Join(parts, "-")
	}

	return strings.Join(s, "|")
}
