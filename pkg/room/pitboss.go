package room

import (
	"context"
	"github.com/sirupsen/logrus"
	"texasholdem-server/internal/rng"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/store"
	"time"
)

type dealerRequest struct {
	tableID string
	reply   chan *Dealer
}

// PitBoss is responsible for dispatching players and requests to the dealer of each table
type PitBoss struct {
	store      store.Store
	opts       Options
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	getDealer  chan dealerRequest
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(s store.Store, opts Options) *PitBoss {
	if opts.Generator == nil {
		opts.Generator = rng.Crypto{}
	}

	return &PitBoss{
		store:      s,
		opts:       opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		getDealer:  make(chan dealerRequest),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	var reap <-chan time.Time
	if p.opts.IdleTimeout > 0 {
		ticker := time.NewTicker(p.opts.IdleTimeout / 2)
		defer ticker.Stop()
		reap = ticker.C
	}

	for {
		select {
		case now := <-reap:
			p.endIdleShifts(now)
		case req := <-p.getDealer:
			req.reply <- p.dealerFor(req.tableID)
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			p.dealerFor(client.tableID).AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.tableID]
			if !found {
				logrus.WithField("tableID", client.tableID).WithField("type", "exception").Error("table not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.tableID)
			}
		}
	}
}

// endIdleShifts stops dealers that nobody is using
// NOTE: must only be called from the run loop
func (p *PitBoss) endIdleShifts(now time.Time) {
	for tableID, dealer := range p.dealers {
		if dealer.isIdle(now) {
			logrus.WithField("tableID", tableID).Debug("ending idle dealer's shift")
			dealer.EndShift()
			delete(p.dealers, tableID)
		}
	}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) dealerFor(tableID string) *Dealer {
	dealer, found := p.dealers[tableID]
	if !found {
		dealer = NewDealer(p, tableID, p.store, p.opts)
		dealer.StartShift()
		p.dealers[tableID] = dealer
	}

	return dealer
}

// Dealer returns the dealer running the table, starting one if needed
func (p *PitBoss) Dealer(tableID string) *Dealer {
	reply := make(chan *Dealer, 1)
	p.getDealer <- dealerRequest{tableID: tableID, reply: reply}
	return <-reply
}

// OpenTable deals the first hand at a new table and stores it
func (p *PitBoss) OpenTable(ctx context.Context, name string, seats []texasholdem.Seat, opts texasholdem.Options) (*texasholdem.Table, error) {
	table, _, err := texasholdem.NewTable("", seats, opts, p.opts.Generator)
	if err != nil {
		return nil, err
	}

	table.Name = name
	if err := p.store.Save(ctx, table); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tableID": table.ID,
		"name":    name,
		"players": len(seats),
	}).Info("opened table")

	return table, nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
