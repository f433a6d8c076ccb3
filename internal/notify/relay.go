// Package notify relays stats change events between processes over Redis
// pub/sub so that a dashboard in one terminal sees quizzes run in another.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/store"
)

// Channel is the Redis channel carrying change events.
const Channel = "nihongo:stats-changed"

const (
	dialTimeout    = 5 * time.Second
	publishTimeout = 2 * time.Second
)

type message struct {
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Relay forwards local broker events to Redis and remote events back into
// the local broker.
type Relay struct {
	client  *redis.Client
	broker  *store.Broker
	origin  string
	channel string
	logger  *zap.Logger
}

// Dial connects to the Redis server at url and returns a relay for broker.
func Dial(ctx context.Context, url string, broker *store.Broker, log *zap.Logger) (*Relay, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return New(client, broker, log), nil
}

// New wraps an existing client.
func New(client *redis.Client, broker *store.Broker, log *zap.Logger) *Relay {
	return &Relay{
		client:  client,
		broker:  broker,
		origin:  uuid.NewString(),
		channel: Channel,
		logger:  logger.OrNop(log),
	}
}

// Origin identifies this process in relayed messages.
func (r *Relay) Origin() string {
	return r.origin
}

// Close closes the Redis client.
func (r *Relay) Close() error {
	return r.client.Close()
}

// Run relays events until ctx is done. It returns nil on cancellation.
func (r *Relay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	remote := pubsub.Channel()

	local, cancel := r.broker.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-local:
			if !ok {
				return nil
			}
			if c.Remote {
				continue
			}
			r.publish(ctx, c)
		case msg, ok := <-remote:
			if !ok {
				return nil
			}
			r.handle(msg.Payload)
		}
	}
}

func (r *Relay) publish(ctx context.Context, c store.Change) {
	data, err := json.Marshal(message{Origin: r.origin, At: c.At})
	if err != nil {
		r.logger.Warn("failed to encode change", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Warn("failed to relay change", zap.Error(err))
	}
}

// handle feeds a remote payload into the local broker, dropping our own echoes.
func (r *Relay) handle(payload string) bool {
	var msg message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		r.logger.Warn("ignoring malformed change message", zap.Error(err))
		return false
	}
	if msg.Origin == r.origin {
		return false
	}
	r.broker.Publish(store.Change{At: msg.At, Remote: true})
	return true
}
