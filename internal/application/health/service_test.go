package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

func TestCollectHealth_NoDependencies(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, "100", result.Traffic.SuccessRate)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	rdb, _ := newRedis(t)
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, fakePinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	require.NotNil(t, result.Dependencies["database"].PingMs)
	// start time is seeded on first read
	_, err := rdb.Get(ctx, KeyStartTime).Result()
	assert.NoError(t, err)

	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResTime, "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResCount, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyLastReq, `{"method":"GET","path":"/api/v1/projects"}`, 0).Err())

	result = CollectHealth(ctx, rdb, fakePinger{})
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result.Traffic.AvgResponseTime)
	assert.Equal(t, "/api/v1/projects", result.Traffic.LastRequest["path"])
}

func TestCollectHealth_DatabaseDown(t *testing.T) {
	rdb, _ := newRedis(t)
	result := CollectHealth(context.Background(), rdb, fakePinger{err: errors.New("refused")})
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Nil(t, result.Dependencies["database"].PingMs)
}

func TestErrorLog_CappedNewestFirst(t *testing.T) {
	rdb, _ := newRedis(t)
	ctx := context.Background()
	for i := 0; i < ErrorLogSize+5; i++ {
		require.NoError(t, LogError(ctx, rdb, map[string]interface{}{"seq": i}))
	}
	out, err := RecentErrors(ctx, rdb)
	require.NoError(t, err)
	require.Len(t, out, ErrorLogSize)
	assert.Equal(t, float64(ErrorLogSize+4), out[0]["seq"])
}

func TestReset(t *testing.T) {
	rdb, _ := newRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "5", 0).Err())
	require.NoError(t, LogError(ctx, rdb, map[string]interface{}{"message": "boom"}))

	require.NoError(t, Reset(ctx, rdb))
	_, err := rdb.Get(ctx, KeyReqTotal).Result()
	assert.ErrorIs(t, err, redis.Nil)
	out, err := RecentErrors(ctx, rdb)
	require.NoError(t, err)
	assert.Empty(t, out)
	_, err = rdb.Get(ctx, KeyStartTime).Result()
	assert.NoError(t, err)
}

func TestRenderDashboardHTML(t *testing.T) {
	html, err := RenderDashboardHTML(CollectHealth(context.Background(), nil, nil))
	require.NoError(t, err)
	assert.Contains(t, html, "Axiso Green · API Status")
	assert.Contains(t, html, "System Issues Detected")
	assert.Contains(t, html, "/health/json")
	assert.Contains(t, html, `id="dep-redis"`)
}
