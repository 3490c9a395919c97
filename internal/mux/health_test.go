package mux

import (
	"github.com/bmizerany/assert"
	"net/http/httptest"
	"testing"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/room"
	"texasholdem-server/pkg/store"
)

func TestHealthHandler(t *testing.T) {
	s := store.NewMemoryStore()
	ts := httptest.NewServer(NewMux("v1.2.3", room.NewPitBoss(s, room.DefaultOptions()), s, texasholdem.DefaultOptions()))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
