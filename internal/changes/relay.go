package changes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 2 * time.Second

// Broker moves opaque payloads between server instances.
type Broker interface {
	Publish(ctx context.Context, channel, payload string) error
	Subscribe(ctx context.Context, channel string) (<-chan string, func() error)
}

// Relay extends a Hub across instances. Local publishes reach local
// subscribers at once and are queued for the broker tagged with this
// instance's origin; remote messages from other origins are replayed
// locally only.
type Relay struct {
	hub     *Hub
	broker  Broker
	channel string
	origin  string
	pending chan struct{}
}

func NewRelay(hub *Hub, broker Broker, channel string) *Relay {
	return &Relay{
		hub:     hub,
		broker:  broker,
		channel: channel,
		origin:  uuid.NewString(),
		pending: make(chan struct{}, 1),
	}
}

// Publish never waits on the broker. While a forward is already queued the
// signal is dropped, since the queued one carries the same news.
func (r *Relay) Publish() {
	r.hub.Publish()

	select {
	case r.pending <- struct{}{}:
	default:
	}
}

func (r *Relay) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := r.broker.Publish(pubCtx, r.channel, r.origin)
			cancel()
			if err != nil {
				log.Warn().Err(err).Str("channel", r.channel).Msg("Failed to forward change signal")
			}
		}
	}
}

// Run forwards queued local signals and consumes remote ones until ctx is
// done.
func (r *Relay) Run(ctx context.Context) error {
	msgs, closeSub := r.broker.Subscribe(ctx, r.channel)
	defer func() {
		if err := closeSub(); err != nil {
			log.Warn().Err(err).Msg("Failed to close change subscription")
		}
	}()

	fwdCtx, stopForward := context.WithCancel(ctx)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		r.forward(fwdCtx)
	}()
	defer func() {
		stopForward()
		<-forwarded
	}()

	log.Info().Str("channel", r.channel).Str("origin", r.origin).Msg("Change relay started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case origin, ok := <-msgs:
			if !ok {
				return nil
			}
			if origin == r.origin {
				continue
			}
			r.hub.Publish()
		}
	}
}

// RedisBroker implements Broker with Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, channel, payload string) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (<-chan string, func() error) {
	sub := b.client.Subscribe(ctx, channel)
	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, sub.Close
}
