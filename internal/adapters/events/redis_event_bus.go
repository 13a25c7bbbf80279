package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	redisclient "github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// ErrBusClosed is returned by Subscribe after Close
var ErrBusClosed = errors.New("event bus closed")

const subscriberBuffer = 64

// RedisEventBus carries hotel events over Redis Pub/Sub. Every subscriber owns
// its own Redis subscription, so a slow consumer only drops its own events.
type RedisEventBus struct {
	client *redisclient.Client

	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	closed bool
}

type subscription struct {
	pubsub *redis.PubSub
	out    chan *entities.HotelEvent
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client: client,
		subs:   make(map[string]map[*subscription]struct{}),
	}
}

// Publish sends event to every subscriber of channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.HotelEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("channel", channel).
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Msg("Published event")
	return nil
}

// Subscribe returns a channel of events that stays open until ctx is done,
// Unsubscribe is called for channel, or the bus is closed. It returns once
// Redis has confirmed the subscription.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.HotelEvent, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	b.mu.Unlock()

	pubsub := b.client.Client().Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	sub := &subscription{
		pubsub: pubsub,
		out:    make(chan *entities.HotelEvent, subscriberBuffer),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = pubsub.Close()
		return nil, ErrBusClosed
	}
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*subscription]struct{})
	}
	b.subs[channel][sub] = struct{}{}
	count := len(b.subs[channel])
	b.mu.Unlock()

	observability.GetLogger().Info().Str("channel", channel).Int("subscribers", count).Msg("Subscribed to channel")

	go b.receive(ctx, channel, sub)
	return sub.out, nil
}

func (b *RedisEventBus) receive(ctx context.Context, channel string, sub *subscription) {
	logger := observability.GetLogger()
	defer func() {
		b.forget(channel, sub)
		if err := sub.pubsub.Close(); err != nil {
			logger.Debug().Err(err).Str("channel", channel).Msg("Failed to close subscription")
		}
		close(sub.out)
	}()

	messages := sub.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event entities.HotelEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn().Err(err).Str("channel", channel).Msg("Dropping malformed event")
				continue
			}
			select {
			case sub.out <- &event:
			default:
				logger.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("Subscriber buffer full, dropping event")
			}
		}
	}
}

func (b *RedisEventBus) forget(channel string, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[channel], sub)
	if len(b.subs[channel]) == 0 {
		delete(b.subs, channel)
	}
}

// Unsubscribe ends every subscription to channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	for sub := range b.subs[channel] {
		sub.stop()
	}
	b.mu.Unlock()

	observability.LoggerFromContext(ctx).Info().Str("channel", channel).Msg("Unsubscribed from channel")
	return nil
}

// Close ends all subscriptions and rejects new ones
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	b.closed = true
	for _, subs := range b.subs {
		for sub := range subs {
			sub.stop()
		}
	}
	b.mu.Unlock()

	observability.GetLogger().Info().Msg("Event bus closed")
	return nil
}
