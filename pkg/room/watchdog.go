package room

import (
	"context"
	"errors"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/store"
)

// watchdog evicts players who hold the turn for too long
// It keeps sweeping a started game after every client is gone and
// retires the dealer once nobody is connected and no game is running
func (d *Dealer) watchdog() {
	opts := d.pitBoss.opts
	ticker := time.NewTicker(opts.WatchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.sweep()
		case <-d.idle:
			d.sweep()
		case <-d.close:
			return
		}
	}
}

func (d *Dealer) sweep() {
	opts := d.pitBoss.opts
	ctx, cancel := context.WithTimeout(context.Background(), opts.ActionTimeout)
	defer cancel()

	started := false
	err := d.apply(ctx, func(s *session.Session) (*session.Session, []*playable.Response, error) {
		next, responses, err := d.pitBoss.engine.Timeout(s, opts.TurnTimeout)
		if err == nil {
			started = next.State.Started
		}

		return next, responses, err
	})

	if errors.Is(err, store.ErrNotFound) {
		d.log.Warn("watchdog could not find session")
	} else if err != nil {
		d.log.WithError(err).Error("watchdog sweep failed")
		return
	}

	if !started && len(d.Clients()) == 0 {
		d.pitBoss.retireDealer(d)
	}
}
