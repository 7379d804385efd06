package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomPresence is the Redis-mirrored view of one live participant,
// readable without a WebSocket connection (room preview).
type RoomPresence struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Mic    bool   `json:"mic"`
	Cam    bool   `json:"cam"`
}

// PresenceCache mirrors live room presence into Redis. Best-effort:
// the in-memory room store stays authoritative and callers only log
// cache failures.
type PresenceCache interface {
	SetUser(ctx context.Context, roomKey string, p *RoomPresence) error
	RemoveUser(ctx context.Context, roomKey, userID string) error
	GetRoom(ctx context.Context, roomKey string) ([]RoomPresence, error)
}

type presenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPresenceCache creates a new presence cache
func NewPresenceCache(client *redis.Client) PresenceCache {
	return &presenceCache{
		client: client,
		ttl:    24 * time.Hour, // Stale rooms expire after 24h
	}
}

func (c *presenceCache) key(roomKey string) string {
	return fmt.Sprintf("presence:%s", roomKey)
}

func (c *presenceCache) SetUser(ctx context.Context, roomKey string, p *RoomPresence) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	key := c.key(roomKey)
	if err := c.client.HSet(ctx, key, p.UserID, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

func (c *presenceCache) RemoveUser(ctx context.Context, roomKey, userID string) error {
	return c.client.HDel(ctx, c.key(roomKey), userID).Err()
}

func (c *presenceCache) GetRoom(ctx context.Context, roomKey string) ([]RoomPresence, error) {
	entries, err := c.client.HGetAll(ctx, c.key(roomKey)).Result()
	if err != nil {
		return nil, err
	}

	out := []RoomPresence{}
	for _, raw := range entries {
		var p RoomPresence
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
