package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)

	a.Equal("fallback", Getenv("HOLDEM_TEST_GETENV", "fallback"))

	t.Setenv("HOLDEM_TEST_GETENV", "")
	a.Equal("fallback", Getenv("HOLDEM_TEST_GETENV", "fallback"), "empty values fall back")

	t.Setenv("HOLDEM_TEST_GETENV", "set")
	a.Equal("set", Getenv("HOLDEM_TEST_GETENV", "fallback"))
}
