package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/sirupsen/logrus"
)

// transition computes the next session and the messages it produced
type transition func(s *session.Session) (*session.Session, []*playable.Response, error)

// Dealer is responsible for a single session
// It serializes actions through the session lock and fans the results out to the connected clients
type Dealer struct {
	pitBoss   *PitBoss
	sessionID string
	clients   map[string]*Client
	lock      sync.RWMutex
	log       logrus.FieldLogger

	outbox    chan []*playable.Response
	idle      chan struct{}
	close     chan bool
	closeOnce sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, sessionID string) *Dealer {
	return &Dealer{
		pitBoss:   pitBoss,
		sessionID: sessionID,
		clients:   make(map[string]*Client),
		log:       logrus.WithField("session", sessionID),
		outbox:    make(chan []*playable.Response, 256),
		idle:      make(chan struct{}, 1),
		close:     make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for _, client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop and the watchdog
func (d *Dealer) StartShift() {
	go d.runLoop()
	go d.watchdog()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case batch := <-d.outbox:
			d.deliver(batch)
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) deliver(batch []*playable.Response) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	for _, response := range batch {
		if response.IsBroadcast() {
			for _, client := range d.clients {
				client.Send(response)
			}

			continue
		}

		client, ok := d.clients[response.Recipient]
		if !ok {
			d.log.WithField("player", response.Recipient).Trace("recipient not connected")
			continue
		}

		client.Send(response)
	}
}

// enqueue hands a batch to the run loop
// Callers hold the session lock, so batches are delivered in admission order
func (d *Dealer) enqueue(batch []*playable.Response) {
	if len(batch) == 0 {
		return
	}

	select {
	case d.outbox <- batch:
	case <-d.close:
	}
}

// AddClient adds a client
// A second connection by the same player replaces the first
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	previous := d.clients[client.playerID]
	client.dealer = d
	d.clients[client.playerID] = client
	d.lock.Unlock()

	if previous != nil && previous != client {
		d.log.WithField("player", client.playerID).Info("connection replaced")
		previous.Terminate(CloseReasonReplaced)
	}
}

// RemoveClient removes a client and reports whether it was the last one
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.clients[client.playerID] == client {
		delete(d.clients, client.playerID)
	}

	return len(d.clients) == 0
}

// Idle tells the watchdog that the last client left
// The watchdog sweeps right away and retires the dealer unless a game is running
func (d *Dealer) Idle() {
	select {
	case d.idle <- struct{}{}:
	default:
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	ctx, cancel := context.WithTimeout(context.Background(), d.pitBoss.opts.ActionTimeout)
	defer cancel()

	err := d.apply(ctx, func(s *session.Session) (*session.Session, []*playable.Response, error) {
		return d.pitBoss.engine.Action(s, c.playerID, msg)
	})

	if err != nil {
		d.log.WithError(err).WithField("player", c.playerID).Error("could not perform action")
		c.Send(newUnknownErrorResponse(c.playerID))
		c.Terminate(CloseReasonUnknownError)
	}
}

// apply runs one transition under the session lock: load, compute, save, enqueue
// Nothing is saved or sent if any step fails
func (d *Dealer) apply(ctx context.Context, fn transition) error {
	p := d.pitBoss
	if err := p.locker.Lock(ctx, d.sessionID); err != nil {
		return fmt.Errorf("could not lock session: %w", err)
	}

	defer func() {
		if err := p.locker.Unlock(context.Background(), d.sessionID); err != nil {
			d.log.WithError(err).Error("could not unlock session")
		}
	}()

	s, err := p.store.Load(ctx, d.sessionID)
	if err != nil {
		return fmt.Errorf("could not load session: %w", err)
	}

	next, responses, err := fn(s)
	if err != nil {
		return err
	}

	if next != s {
		next.Updated = time.Now()
		if err := p.store.Save(ctx, next); err != nil {
			return fmt.Errorf("could not save session: %w", err)
		}
	}

	d.enqueue(responses)
	return nil
}
