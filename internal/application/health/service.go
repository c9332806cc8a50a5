// Package health reports process, traffic and dependency status.
package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys written by the request marker middleware.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// StatKeys are cleared by a stats reset.
var StatKeys = []string{KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq, KeyErrorLog}

// ErrorLogSize caps the stored error log.
const ErrorLogSize = 50

// DBPinger is satisfied by *sql.DB. A nil pinger reports the database as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int                    `json:"totalRequests"`
	SuccessCount    int                    `json:"successCount"`
	FailedCount     int                    `json:"failedCount"`
	SuccessRate     string                 `json:"successRate"`
	AvgResponseTime string                 `json:"avgResponseTime"`
	LastRequest     map[string]interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

func ping(ctx context.Context, fn func(context.Context) error) DepStatus {
	start := time.Now()
	if err := fn(ctx); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}

// CollectHealth pings the database and Redis and reads the traffic counters.
// Status is "ok" only when both dependencies answer.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	result := CollectResult{
		Dependencies: map[string]DepStatus{
			"database": {Status: "disconnected"},
			"redis":    {Status: "disconnected"},
		},
		Traffic: TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"},
	}
	if db != nil {
		result.Dependencies["database"] = ping(ctx, db.PingContext)
	}

	startMs := time.Now().UnixMilli()
	if rdb != nil {
		dep := ping(ctx, func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		result.Dependencies["redis"] = dep
		if dep.Status == "connected" {
			startMs = readTraffic(ctx, rdb, &result.Traffic, startMs)
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	result.Status = "issue"
	if result.Dependencies["database"].Status == "connected" && result.Dependencies["redis"].Status == "connected" {
		result.Status = "ok"
	}
	return result
}

// readTraffic fills t from the counters and returns the recorded start time,
// seeding it when absent.
func readTraffic(ctx context.Context, rdb *redis.Client, t *TrafficInfo, startMs int64) int64 {
	vals, err := rdb.MGet(ctx, KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq).Result()
	if err != nil {
		return startMs
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}
	if v, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		startMs = v
	} else {
		rdb.Set(ctx, KeyStartTime, startMs, 0)
	}

	t.TotalRequests, _ = strconv.Atoi(str(0))
	t.FailedCount, _ = strconv.Atoi(str(1))
	t.SuccessCount = t.TotalRequests - t.FailedCount
	if t.TotalRequests > 0 {
		t.SuccessRate = strconv.FormatFloat(float64(t.SuccessCount)/float64(t.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	if count, _ := strconv.Atoi(str(3)); count > 0 {
		t.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if s := str(5); s != "" {
		_ = json.Unmarshal([]byte(s), &t.LastRequest)
	}
	return startMs
}

// Reset clears the counters and restarts the uptime clock.
func Reset(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Del(ctx, StatKeys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}

// RecentErrors returns the newest logged server errors, newest first.
func RecentErrors(ctx context.Context, rdb *redis.Client) ([]map[string]interface{}, error) {
	entries, err := rdb.LRange(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// LogError pushes an entry onto the capped error log.
func LogError(ctx context.Context, rdb *redis.Client, entry map[string]interface{}) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := rdb.TxPipeline()
	pipe.LPush(ctx, KeyErrorLog, b)
	pipe.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1)
	_, err = pipe.Exec(ctx)
	return err
}
