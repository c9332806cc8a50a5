package auth

import (
	"context"
	"testing"

	"axiso-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroyUserSessions(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	for _, sid := range []string{"a", "b"} {
		require.NoError(t, rdb.Set(ctx, middleware.SessionRedisPrefix+sid, "{}", 0).Err())
		require.NoError(t, rdb.SAdd(ctx, UserSessionsPrefix+"u1", sid).Err())
	}
	require.NoError(t, rdb.Set(ctx, middleware.SessionRedisPrefix+"other", "{}", 0).Err())

	n, err := DestroyUserSessions(ctx, rdb, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists(middleware.SessionRedisPrefix+"a"))
	assert.False(t, mr.Exists(UserSessionsPrefix+"u1"))
	assert.True(t, mr.Exists(middleware.SessionRedisPrefix+"other"))

	n, err = DestroyUserSessions(ctx, rdb, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
