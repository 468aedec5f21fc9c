package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

const outboundTimeout = 5 * time.Second

type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type Event struct {
	Type   string    `json:"type"`
	Table  string    `json:"table"`
	ID     uint      `json:"id"`
	Actor  string    `json:"actor"`
	At     time.Time `json:"at"`
	Entity any       `json:"entity,omitempty"`
}

// publish runs after commit. A broker failure is logged and swallowed.
func publish(ctx context.Context, pub EventPublisher, action, table string, id uint, actor string, entity any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	ev := Event{
		Type:   table + "." + action,
		Table:  table,
		ID:     id,
		Actor:  actor,
		At:     time.Now().UTC(),
		Entity: entity,
	}
	if err := pub.PublishEvent(ctx, strconv.FormatUint(uint64(id), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "event", ev.Type, "id", id, "error", err)
	}
}

func actorOrAnonymous(actor string) string {
	if actor == "" {
		return models.AnonymousActor
	}
	return actor
}
