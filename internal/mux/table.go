package mux

import (
	"context"
	"errors"
	"net/http"
	"texasholdem-server/internal/util"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/room"

	"github.com/gorilla/mux"
)

type postTableSeat struct {
	ID    int64 `json:"id"`
	Chips int   `json:"chips"`
}

type postTablePayload struct {
	Name               string          `json:"name"`
	Players            []postTableSeat `json:"players"`
	SmallBlind         int             `json:"smallBlind"`
	BigBlind           int             `json:"bigBlind"`
	SmallBlindPosition int             `json:"smallBlindPosition"`
}

var errOpenerNotSeated = errors.New("you must be seated at a table you open")

const maxTableNameLength = 40

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if len(pp.Name) > maxTableNameLength {
			writeJSONError(w, http.StatusBadRequest, errors.New("name cannot be more than 40 characters"))
			return
		}

		if pp.Name == "" {
			pp.Name = util.GetRandomName()
		}

		playerID := playerIDFromContext(r.Context())
		seated := false
		seats := make([]texasholdem.Seat, len(pp.Players))
		for i, p := range pp.Players {
			seats[i] = texasholdem.Seat{ID: p.ID, Chips: p.Chips}
			seated = seated || p.ID == playerID
		}

		if !seated {
			writeJSONError(w, http.StatusForbidden, errOpenerNotSeated)
			return
		}

		opts := m.defaults
		if pp.SmallBlind > 0 || pp.BigBlind > 0 {
			opts.SmallBlind = pp.SmallBlind
			opts.BigBlind = pp.BigBlind
		}
		opts.SmallBlindPosition = pp.SmallBlindPosition

		table, err := m.pitBoss.OpenTable(r.Context(), pp.Name, seats, opts)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, table.ViewFor(playerID))
	}
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := tableFromContext(r.Context())
		writeJSON(w, http.StatusOK, table.ViewFor(playerIDFromContext(r.Context())))
	})
}

type postActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		a, err := action.FromString(pp.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		playerID := playerIDFromContext(r.Context())
		tableID := tableFromContext(r.Context()).ID
		view, err := m.withDealer(r.Context(), tableID, func(d *room.Dealer) (*texasholdem.View, error) {
			return d.Action(r.Context(), playerID, a, pp.Amount)
		})

		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (m *Mux) postTableUUIDNext() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r.Context())
		tableID := tableFromContext(r.Context()).ID
		view, err := m.withDealer(r.Context(), tableID, func(d *room.Dealer) (*texasholdem.View, error) {
			return d.NextHand(r.Context(), playerID)
		})

		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

// withDealer runs fn against the table's dealer
// A dealer can end its shift between being handed out and being used, so that is retried once
func (m *Mux) withDealer(ctx context.Context, tableID string, fn func(d *room.Dealer) (*texasholdem.View, error)) (*texasholdem.View, error) {
	view, err := fn(m.pitBoss.Dealer(tableID))
	if errors.Is(err, room.ErrDealerClosed) && ctx.Err() == nil {
		view, err = fn(m.pitBoss.Dealer(tableID))
	}

	return view, err
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := mux.Vars(r)["uuid"]
		table, err := m.store.Load(r.Context(), uuid)
		if err != nil {
			writeTableError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, table)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
