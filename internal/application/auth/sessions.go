package auth

import (
	"context"

	"axiso-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// UserSessionsPrefix indexes a user's live session ids: user_sessions:<user_id>.
const UserSessionsPrefix = "user_sessions:"

// DestroyUserSessions deletes every session recorded for userID along with
// the index set, and returns how many sessions were removed.
func DestroyUserSessions(ctx context.Context, rdb *redis.Client, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	key := UserSessionsPrefix + userID
	sessionIDs, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	pipe := rdb.TxPipeline()
	for _, sid := range sessionIDs {
		pipe.Del(ctx, middleware.SessionRedisPrefix+sid)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(sessionIDs), nil
}
