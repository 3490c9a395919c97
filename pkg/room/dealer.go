package room

import (
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"sync"
	"sync/atomic"
	"texasholdem-server/internal/rng"
	"texasholdem-server/pkg/poker/action"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/store"
	"time"
)

// ErrNotSeated is returned when a player who isn't seated tries to run the table
var ErrNotSeated = errors.New("you are not seated at this table")

// ErrDealerClosed is returned when a request reaches a dealer that has ended its shift
var ErrDealerClosed = errors.New("dealer is no longer running")

// Options configures the dealers
type Options struct {
	// TurnTimeout is how long a player has to act before they are checked or folded, 0 disables it
	TurnTimeout time.Duration
	// TickInterval is how often the turn timer is checked
	TickInterval time.Duration
	// IdleTimeout is how long a dealer with no clients is kept after its last request, 0 keeps it forever
	IdleTimeout time.Duration
	Generator   rng.Generator
}

// DefaultOptions returns the default dealer options
func DefaultOptions() Options {
	return Options{
		TurnTimeout:  time.Second * 30,
		TickInterval: time.Second,
		IdleTimeout:  time.Minute * 5,
		Generator:    rng.Crypto{},
	}
}

// Dealer runs a single table
// Every change to the table happens in the dealer's run loop, one at a time
type Dealer struct {
	pitBoss *PitBoss
	tableID string
	store   store.Store
	opts    Options
	clients map[*Client]bool
	lock    sync.RWMutex
	log     logrus.FieldLogger

	// lastUsed is the time of the last request in unix nanoseconds
	lastUsed atomic.Int64

	// only accessed from the run loop
	table       *texasholdem.Table
	turnStarted time.Time
	logMessages []*texasholdem.Event
	now         func() time.Time

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, tableID string, s store.Store, opts Options) *Dealer {
	if opts.Generator == nil {
		opts.Generator = rng.Crypto{}
	}

	d := &Dealer{
		pitBoss:       pitBoss,
		tableID:       tableID,
		store:         s,
		opts:          opts,
		clients:       make(map[*Client]bool),
		log:           logrus.WithField("tableID", tableID),
		logMessages:   make([]*texasholdem.Event, 0, logMessageLimit),
		now:           time.Now,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	d.touch()
	return d
}

func (d *Dealer) touch() {
	d.lastUsed.Store(d.now().UnixNano())
}

// isIdle returns true if nobody is watching the table and nothing has been asked of the dealer for IdleTimeout
func (d *Dealer) isIdle(now time.Time) bool {
	if d.opts.IdleTimeout <= 0 || len(d.Clients()) > 0 {
		return false
	}

	return now.Sub(time.Unix(0, d.lastUsed.Load())) >= d.opts.IdleTimeout
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")

	var tick <-chan time.Time
	if d.opts.TurnTimeout > 0 && d.opts.TickInterval > 0 {
		ticker := time.NewTicker(d.opts.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-tick:
			d.tick()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// exec runs fn in the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	d.touch()

	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Action applies a player's action to the table and returns the table as that player now sees it
func (d *Dealer) Action(ctx context.Context, playerID int64, a action.Action, amount int) (*texasholdem.View, error) {
	var view *texasholdem.View
	var err error
	if execErr := d.exec(ctx, func() {
		view, err = d.applyAction(ctx, playerID, a, amount)
	}); execErr != nil {
		return nil, execErr
	}

	return view, err
}

// NextHand deals the next hand from the finished one
func (d *Dealer) NextHand(ctx context.Context, playerID int64) (*texasholdem.View, error) {
	var view *texasholdem.View
	var err error
	if execErr := d.exec(ctx, func() {
		view, err = d.nextHand(ctx, playerID)
	}); execErr != nil {
		return nil, execErr
	}

	return view, err
}

// View returns the table as the player sees it
func (d *Dealer) View(ctx context.Context, playerID int64) (*texasholdem.View, error) {
	var view *texasholdem.View
	var err error
	if execErr := d.exec(ctx, func() {
		var table *texasholdem.Table
		if table, err = d.load(ctx); err == nil {
			view = table.ViewFor(playerID)
		}
	}); execErr != nil {
		return nil, execErr
	}

	return view, err
}

// NOTE: must only be called from the run loop
func (d *Dealer) load(ctx context.Context) (*texasholdem.Table, error) {
	table, err := d.store.Load(ctx, d.tableID)
	if err != nil {
		return nil, err
	}

	d.setTable(table)
	return table, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) setTable(table *texasholdem.Table) {
	if d.table == nil || d.table.Version != table.Version {
		d.turnStarted = d.now()
	}

	d.table = table
}

// NOTE: must only be called from the run loop
func (d *Dealer) applyAction(ctx context.Context, playerID int64, a action.Action, amount int) (*texasholdem.View, error) {
	table, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	next, events, err := texasholdem.Apply(table, playerID, a, amount)
	if err != nil {
		d.logError(err, logrus.Fields{"playerID": playerID, "action": a, "amount": amount})
		return nil, err
	}

	if err := d.commit(ctx, next, events); err != nil {
		return nil, err
	}

	return next.ViewFor(playerID), nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) nextHand(ctx context.Context, playerID int64) (*texasholdem.View, error) {
	table, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := table.PlayerByID(playerID); err != nil {
		return nil, ErrNotSeated
	}

	next, events, err := texasholdem.NextHand(table, d.opts.Generator)
	if err != nil {
		d.logError(err, logrus.Fields{"playerID": playerID})
		return nil, err
	}

	if err := d.commit(ctx, next, events); err != nil {
		return nil, err
	}

	return next.ViewFor(playerID), nil
}

// commit saves the table and then tells everyone about it
// NOTE: must only be called from the run loop
func (d *Dealer) commit(ctx context.Context, next *texasholdem.Table, events []*texasholdem.Event) error {
	if err := d.store.Save(ctx, next); err != nil {
		d.logError(err, logrus.Fields{"version": next.Version})
		return err
	}

	d.setTable(next)
	d.addLogMessages(events)
	d.sendTable(events)

	if !next.GameInProgress {
		d.log.WithFields(logrus.Fields{
			"handNumber": next.HandNumber,
			"netWinners": next.NetWinners,
		}).Info("hand is over")
	}

	return nil
}

func (d *Dealer) logError(err error, fields logrus.Fields) {
	log := d.log.WithFields(fields).WithError(err)
	if IsUserError(err) {
		log.Debug("request rejected")
		return
	}

	log.WithField("type", "exception").Error("could not update table")
}

// tick submits a check, or a fold if checking isn't allowed, for a player who has run out of time
// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	table := d.table
	if table == nil || !table.GameInProgress || d.opts.TurnTimeout <= 0 {
		return
	}

	p := table.CurrentPlayer()
	if p == nil || d.now().Sub(d.turnStarted) < d.opts.TurnTimeout {
		return
	}

	a := action.Fold
	if p.Bet == table.HighestBet {
		a = action.Check
	}

	d.log.WithFields(logrus.Fields{"playerID": p.ID, "action": a}).Info("player ran out of time")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	d.touch()
	if _, err := d.applyAction(ctx, p.ID, a, 0); err != nil {
		// reset the clock so a failing store isn't hammered every tick
		d.turnStarted = d.now()
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		table, err := d.load(context.Background())
		if err != nil {
			client.Send(newErrorResponse("", err))
			return
		}

		client.Send(&Response{Key: "table", Data: table.ViewFor(client.playerID)})
		if len(d.logMessages) > 0 {
			client.Send(&Response{Key: "events", Data: d.logMessages})
		}
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendTable(events []*texasholdem.Event) {
	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "table",
			Data: d.table.ViewFor(client.playerID),
		})

		if len(events) > 0 {
			client.Send(&Response{
				Key:  "events",
				Data: events,
			})
		}
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	d.execInRunLoop <- func() {
		ctx := context.Background()

		var err error
		switch msg.Action {
		case commandView:
			var table *texasholdem.Table
			if table, err = d.load(ctx); err == nil {
				c.Send(&Response{Key: "table", Data: table.ViewFor(c.playerID), Context: msg.Context})
				return
			}
		case commandNextHand:
			_, err = d.nextHand(ctx, c.playerID)
		default:
			var a action.Action
			if a, err = action.FromString(msg.Action); err != nil {
				err = texasholdem.InvalidActionError(err.Error())
				break
			}

			_, err = d.applyAction(ctx, c.playerID, a, msg.Amount)
		}

		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	}
}
