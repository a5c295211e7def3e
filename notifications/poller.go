// Package notifications refreshes the unread-notification list on a fixed
// interval. The backend pushes nothing; the bell icon is only as fresh as
// the last poll.
package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cookieshop/storefront/api"
)

// DefaultInterval matches the original client's 30-second refresh.
const DefaultInterval = 30 * time.Second

// Source is the slice of the backend the poller needs.
type Source interface {
	ListNotifications(ctx context.Context) ([]api.Notification, error)
}

// Poller fetches notifications on a fixed schedule and hands each result to
// a callback. A failed poll is logged and dropped; the next tick fetches
// again by schedule, not as a retry.
type Poller struct {
	source   Source
	onUpdate func([]api.Notification)
	interval time.Duration
	log      zerolog.Logger

	stop chan struct{}
	done chan struct{}
}

// Option modifies a Poller at construction time.
type Option func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithLogger sets the poller's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Poller) {
		p.log = log
	}
}

// NewPoller creates a stopped poller. onUpdate is invoked from the polling
// goroutine with each successful result, including the immediate first fetch.
func NewPoller(source Source, onUpdate func([]api.Notification), options ...Option) (*Poller, error) {
	if source == nil {
		return nil, errors.New("[notifications.NewPoller] source is required")
	}
	if onUpdate == nil {
		return nil, errors.New("[notifications.NewPoller] onUpdate is required")
	}

	p := &Poller{
		source:   source,
		onUpdate: onUpdate,
		interval: DefaultInterval,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// Start begins polling: one immediate fetch, then one per interval, until
// Stop is called or ctx is cancelled. The ticker is always released.
func (p *Poller) Start(ctx context.Context) {
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.fetch(ctx)
		for {
			select {
			case <-ticker.C:
				p.fetch(ctx)
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends polling and waits for the polling goroutine to exit. Stopping a
// never-started poller is a no-op.
func (p *Poller) Stop() {
	if p.stop == nil {
		return
	}
	select {
	case <-p.stop:
		// already stopped
	default:
		close(p.stop)
	}
	<-p.done
}

func (p *Poller) fetch(ctx context.Context) {
	notifications, err := p.source.ListNotifications(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("notification poll failed")
		return
	}
	p.onUpdate(notifications)
}
