package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("raise")
	a.NoError(err)
	a.Equal(Raise, act)

	act, err = FromString("Check")
	a.NoError(err)
	a.Equal(Check, act)

	act, err = FromString("discard")
	a.EqualError(err, "unknown action for identifier: discard")
	a.Equal(Action(""), act)
}

func TestAction_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(Call)
	a.NoError(err)
	a.Equal(`{"id":"call","name":"Call"}`, string(b))

	var decoded Action
	a.NoError(json.Unmarshal(b, &decoded))
	a.Equal(Call, decoded)

	a.NoError(json.Unmarshal([]byte(`"fold"`), &decoded))
	a.Equal(Fold, decoded)

	a.Error(json.Unmarshal([]byte(`"trade"`), &decoded))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", Fold.LogMessage(0))
	a.Equal("checked", Check.LogMessage(0))
	a.Equal("called ${50}", Call.LogMessage(50))
	a.Equal("raised to ${200}", Raise.LogMessage(200))
	a.True(Raise.IsValid())
	a.False(Action("bet").IsValid())
}
