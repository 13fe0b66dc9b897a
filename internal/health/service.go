package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

var startedAt = time.Now()

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

type CollectResult struct {
	Status        string               `json:"status"`
	UptimeSeconds int64                `json:"uptimeSeconds"`
	GoVersion     string               `json:"goVersion"`
	Dependencies  map[string]DepStatus `json:"dependencies"`
}

// CollectHealth pings the database and Redis and reports overall status.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	result := CollectResult{
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		GoVersion:     runtime.Version(),
		Dependencies:  make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	result.Status = "ok"
	for _, dep := range result.Dependencies {
		if dep.Status == "error" {
			result.Status = "degraded"
		}
	}
	return result
}
