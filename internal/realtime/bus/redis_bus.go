package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

const defaultChannel = "sitebuilder.events"

type RedisConfig struct {
	Addr    string
	Channel string
}

// publisher is the slice of the redis client used for outbound messages.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

// message tags an encoded event with the instance that published it.
type message struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	pub     publisher
	channel string
	// origin identifies this process on the shared channel.
	origin  string
}

func NewRedisBus(log *logger.Logger, cfg RedisConfig) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = defaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("service", "RedisEventBus"),
		rdb:     rdb,
		pub:     rdb,
		channel: ch,
		origin:  uuid.NewString(),
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, e events.Event) error {
	if b == nil || b.pub == nil {
		return fmt.Errorf("redis event bus not initialized")
	}
	ev, err := events.Marshal(e)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(message{Origin: b.origin, Event: ev})
	if err != nil {
		return fmt.Errorf("encode bus message: %w", err)
	}
	return b.pub.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(events.Event)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis event bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				b.deliver([]byte(m.Payload), onEvent)
			}
		}
	}()
	return nil
}

// deliver decodes one channel payload and hands it to onEvent unless this
// instance published it.
func (b *redisBus) deliver(payload []byte, onEvent func(events.Event)) {
	var msg message
	if err := json.Unmarshal(payload, &msg); err != nil {
		b.log.Warn("bad redis event payload", "error", err)
		return
	}
	if msg.Origin == b.origin {
		return
	}
	e, err := events.Unmarshal(msg.Event)
	if err != nil {
		b.log.Warn("bad redis event payload", "error", err, "origin", msg.Origin)
		return
	}
	onEvent(e)
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

// NewHandler returns a dispatcher handler that publishes every event to b.
func NewHandler(b Bus) eventbus.Handler {
	return eventbus.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if err := b.Publish(ctx, e); err != nil {
			return fmt.Errorf("publish %s: %w", e.Type(), err)
		}
		return nil
	})
}
