package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/room"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func threeHanded() postTablePayload {
	return postTablePayload{
		Name: "Friday Game",
		Players: []postTableSeat{
			{ID: 1, Chips: 1000},
			{ID: 2, Chips: 1000},
			{ID: 3, Chips: 1000},
		},
	}
}

// openTable opens a three-handed table where player 3 acts first
func openTable(t *testing.T, ts *httptest.Server) *texasholdem.View {
	t.Helper()

	var view *texasholdem.View
	assertPost(t, ts, "/table", threeHanded(), &view, 201, token(1))
	return view
}

func Test_postTable(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	view := openTable(t, ts)
	a.NotEmpty(view.ID)
	a.Equal("Friday Game", view.Name)
	a.Equal(1, view.HandNumber)
	a.Equal(75, view.Pot)
	a.Equal(50, view.BigBlind)
	a.Equal(2, view.CurrentTurn)
	a.Equal(texasholdem.StagePreFlop, view.Stage)
	a.Len(view.Players[0].HoleCards, 2)
	a.Len(view.Players[1].HoleCards, 0)
	a.Len(view.Players[2].HoleCards, 0)

	pp := threeHanded()
	pp.Name = ""
	pp.SmallBlind = 5
	pp.BigBlind = 10
	pp.SmallBlindPosition = 1
	assertPost(t, ts, "/table", pp, &view, 201, token(2))
	a.NotEmpty(view.Name)
	a.Equal(10, view.BigBlind)
	a.Equal(1, view.SmallBlindPosition)
	a.Equal(15, view.Pot)

	var errObj errorResponse
	assertPost(t, ts, "/table", threeHanded(), &errObj, 403, token(4))
	a.Equal("you must be seated at a table you open", errObj.Message)

	pp = threeHanded()
	pp.Players = pp.Players[0:1]
	assertPost(t, ts, "/table", pp, &errObj, 400, token(1))
	a.Equal("there must be at least two players", errObj.Message)

	pp = threeHanded()
	pp.Name = strings.Repeat("A", 41)
	assertPost(t, ts, "/table", pp, &errObj, 400, token(1))
	a.Equal("name cannot be more than 40 characters", errObj.Message)

	assertPost(t, ts, "/table", "{", &errObj, 400, token(1))
	assertPost(t, ts, "/table", threeHanded(), &errObj, 401)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/table", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	assertDo(t, req, nil, 415, token(1))
}

func Test_getTableUUID(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	opened := openTable(t, ts)

	var view *texasholdem.View
	assertGet(t, ts, "/table/"+opened.ID, &view, 200, token(2))
	a.Equal(opened.ID, view.ID)
	a.Len(view.Players[0].HoleCards, 0)
	a.Len(view.Players[1].HoleCards, 2)
	a.Len(view.Actions, 0, "it isn't player 2's turn")

	// spectators see no cards at all
	assertGet(t, ts, "/table/"+opened.ID, &view, 200, token(99))
	for _, p := range view.Players {
		a.Len(p.HoleCards, 0)
	}

	var errObj errorResponse
	assertGet(t, ts, "/table/00000000-0000-0000-0000-000000000000", &errObj, 404, token(1))
	a.Equal("game not found", errObj.Message)

	assertGet(t, ts, "/table/not-a-uuid", nil, 404, token(1))
}

func Test_postTableUUIDAction(t *testing.T) {
	a := assert.New(t)

	m, s := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	path := "/table/" + openTable(t, ts).ID + "/action"

	var errObj errorResponse
	assertPost(t, ts, path, postActionPayload{Action: "call"}, &errObj, 409, token(1))
	a.Equal("it is not your turn", errObj.Message)

	assertPost(t, ts, path, postActionPayload{Action: "shove"}, &errObj, 400, token(3))
	a.Equal("unknown action for identifier: shove", errObj.Message)

	assertPost(t, ts, path, postActionPayload{Action: "call"}, &errObj, 404, token(99))
	a.Equal("player is not seated at this table: 99", errObj.Message)

	assertPost(t, ts, path, postActionPayload{Action: "raise", Amount: -10}, &errObj, 400, token(3))
	a.Equal("raise amount of ${-10} cannot be negative", errObj.Message)

	var view *texasholdem.View
	assertPost(t, ts, path, postActionPayload{Action: "call"}, &view, 200, token(3))
	a.Equal(0, view.CurrentTurn)
	a.Equal(125, view.Pot)
	a.Equal(&texasholdem.LastAction{PlayerID: 3, Action: action.Call}, view.LastAction)

	assertPost(t, ts, path, postActionPayload{Action: "RAISE", Amount: 100}, &view, 200, token(1))
	a.Equal(150, view.HighestBet)

	stored, err := s.Load(cbg, view.ID)
	a.NoError(err)
	a.Equal(int64(3), stored.Version)
	a.Equal([]action.Action{action.Call, action.Raise, action.Fold}, stored.ActionsFor(2))
}

func Test_postTableUUIDAction_enforceMinRaise(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux()
	m.defaults.EnforceMinRaise = true
	ts := httptest.NewServer(m)
	defer ts.Close()

	path := "/table/" + openTable(t, ts).ID + "/action"

	var errObj errorResponse
	assertPost(t, ts, path, postActionPayload{Action: "raise", Amount: 10}, &errObj, 400, token(3))
	a.Equal("your raise of ${10} must be at least ${50}", errObj.Message)

	var view *texasholdem.View
	assertPost(t, ts, path, postActionPayload{Action: "raise", Amount: 50}, &view, 200, token(3))
	a.Equal(100, view.HighestBet)
}

func Test_postTableUUIDNext(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	id := openTable(t, ts).ID

	var errObj errorResponse
	assertPost(t, ts, "/table/"+id+"/next", nil, &errObj, 409, token(1))
	a.Equal("the current hand is still in progress", errObj.Message)

	var view *texasholdem.View
	assertPost(t, ts, "/table/"+id+"/action", postActionPayload{Action: "fold"}, &view, 200, token(3))
	assertPost(t, ts, "/table/"+id+"/action", postActionPayload{Action: "fold"}, &view, 200, token(1))
	a.False(view.GameInProgress)
	a.Equal([]int64{2}, view.NetWinners)

	assertPost(t, ts, "/table/"+id+"/action", postActionPayload{Action: "check"}, &errObj, 409, token(2))
	a.Equal("the hand is over", errObj.Message)

	assertPost(t, ts, "/table/"+id+"/next", nil, &errObj, 403, token(99))
	a.Equal("you are not seated at this table", errObj.Message)

	assertPost(t, ts, "/table/"+id+"/next", nil, &view, 200, token(2))
	a.Equal(id, view.ID)
	a.Equal(2, view.HandNumber)
	a.Equal("Friday Game", view.Name)
	a.Equal(1, view.SmallBlindPosition)
	a.True(view.GameInProgress)
}

type wsMessage struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

func readUntil(t *testing.T, conn *websocket.Conn, key string) wsMessage {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}

		if msg.Key == key {
			return msg
		}
	}
}

func Test_getTableUUIDWS(t *testing.T) {
	a := assert.New(t)

	m, _ := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	id := openTable(t, ts).ID
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/" + id + "/ws?access_token=" + url.QueryEscape(token(3))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var view texasholdem.View
	msg := readUntil(t, conn, "table")
	a.NoError(json.Unmarshal(msg.Data, &view))
	a.Equal(id, view.ID)
	a.Len(view.Players[2].HoleCards, 2)

	a.NoError(conn.WriteJSON(room.PayloadIn{Action: "check", Context: "first"}))
	msg = readUntil(t, conn, "error")
	a.Equal("you cannot check with an active bet", msg.Value)
	a.Equal("first", msg.Context)

	a.NoError(conn.WriteJSON(room.PayloadIn{Action: "call", Context: "second"}))
	msg = readUntil(t, conn, "status")
	a.Equal("OK", msg.Value)
	a.Equal("second", msg.Context)

	var after *texasholdem.View
	assertGet(t, ts, "/table/"+id, &after, 200, token(3))
	a.Equal(125, after.Pot)

	// actions over HTTP reach websocket clients too
	assertPost(t, ts, "/table/"+id+"/action", postActionPayload{Action: "fold"}, nil, 200, token(1))
	msg = readUntil(t, conn, "events")
	var events []*texasholdem.Event
	a.NoError(json.Unmarshal(msg.Data, &events))
	a.Equal("{} folded", events[0].Message)
	a.Equal([]int64{1}, events[0].PlayerIDs)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/table/"+id+"/ws", nil)
	a.Equal(websocket.ErrBadHandshake, err)
}
