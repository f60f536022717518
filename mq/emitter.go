package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/anumeetkumar/restaurants-booking/live"

	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel store mutation events go out on.
const Channel = "dashboard-events"

// Topic is the live websocket topic mirrored on every emit.
const Topic = "dashboard"

// Index describes a store mutation for downstream consumers.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	Label      string `json:"label,omitempty"`
}

// Emitter publishes store mutation events. A nil redis client disables
// pub/sub; local websocket broadcast still happens.
type Emitter struct {
	rdx *redis.Client
}

func NewEmitter(client *redis.Client) *Emitter {
	return &Emitter{rdx: client}
}

// Emit fans the event out to redis (when configured) and to live
// dashboard subscribers. Failures are logged, never propagated; events
// are advisory and must not fail the mutation that produced them.
func (e *Emitter) Emit(eventName string, content Index) {
	data, err := json.Marshal(map[string]any{"event": eventName, "data": content})
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if e.rdx != nil {
		if err := e.rdx.Publish(context.Background(), Channel, data).Err(); err != nil {
			log.Printf("[Emit] Failed to publish event to Redis: %v", err)
		}
	}

	live.Broadcast(Topic, data)
}
