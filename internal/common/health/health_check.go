package health

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents the overall health of the application
type HealthStatus struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   string                     `json:"version"`
	Checks    map[string]ComponentHealth `json:"checks"`
	Duration  int64                      `json:"duration_ms"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// SystemMetrics captures current system metrics
type SystemMetrics struct {
	MemoryUsageMB  uint64 `json:"memory_usage_mb"`
	GoroutineCount int    `json:"goroutine_count"`
	CPUNumCores    int    `json:"cpu_num_cores"`
	NumGC          uint32 `json:"num_gc"`
	Uptime         int64  `json:"uptime_seconds"`
}

// CheckFunc probes one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// HealthChecker provides health check functionality
type HealthChecker struct {
	db        *gorm.DB
	version   string
	startTime time.Time
	timeout   time.Duration

	mu              sync.RWMutex
	checks          map[string]CheckFunc
	lastCheckStatus string
}

// NewHealthChecker creates a new health checker. The database is always
// checked; the other components are added with AddCheck.
func NewHealthChecker(db *gorm.DB, version string) *HealthChecker {
	return &HealthChecker{
		db:        db,
		version:   version,
		startTime: time.Now(),
		timeout:   2 * time.Second,
		checks:    make(map[string]CheckFunc),
	}
}

// AddCheck registers a non-critical component. A failing component degrades
// the status but does not make the service unready.
func (hc *HealthChecker) AddCheck(name string, fn CheckFunc) {
	hc.mu.Lock()
	hc.checks[name] = fn
	hc.mu.Unlock()
}

// Check performs a complete health check
func (hc *HealthChecker) Check(ctx context.Context) HealthStatus {
	start := time.Now()
	status := HealthStatus{
		Timestamp: start,
		Version:   hc.version,
		Checks:    make(map[string]ComponentHealth),
	}

	status.Checks["database"] = hc.run(ctx, hc.pingDatabase)
	status.Status = StatusHealthy
	if !status.Checks["database"].Healthy {
		status.Status = StatusUnhealthy
	}

	hc.mu.RLock()
	names := make([]string, 0, len(hc.checks))
	checks := make(map[string]CheckFunc, len(hc.checks))
	for name, fn := range hc.checks {
		names = append(names, name)
		checks[name] = fn
	}
	hc.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		result := hc.run(ctx, checks[name])
		status.Checks[name] = result
		if !result.Healthy && status.Status == StatusHealthy {
			status.Status = StatusDegraded
		}
	}

	status.Duration = time.Since(start).Milliseconds()

	hc.mu.Lock()
	hc.lastCheckStatus = status.Status
	hc.mu.Unlock()

	return status
}

func (hc *HealthChecker) run(ctx context.Context, fn CheckFunc) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	result := ComponentHealth{
		Healthy:   err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func (hc *HealthChecker) pingDatabase(ctx context.Context) error {
	if hc.db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := hc.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// IsHealthy reports the outcome of the last Check
func (hc *HealthChecker) IsHealthy() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.lastCheckStatus == StatusHealthy
}

// IsReady returns true if the database answers
func (hc *HealthChecker) IsReady(ctx context.Context) bool {
	return hc.run(ctx, hc.pingDatabase).Healthy
}

// IsAlive returns true if system is running
func (hc *HealthChecker) IsAlive() bool {
	return true
}

// GetMetrics returns current system metrics
func (hc *HealthChecker) GetMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemMetrics{
		MemoryUsageMB:  m.Alloc / 1024 / 1024,
		GoroutineCount: runtime.NumGoroutine(),
		CPUNumCores:    runtime.NumCPU(),
		NumGC:          m.NumGC,
		Uptime:         int64(time.Since(hc.startTime).Seconds()),
	}
}
