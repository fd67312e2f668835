package health

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"
)

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check представляет результат проверки одного компонента
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response представляет сводный отчёт
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks,omitempty"`
	Version   string    `json:"version,omitempty"`
}

// Healthy сообщает, можно ли продолжать работу с хранилищем.
func (r Response) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// Checker интерфейс для проверки здоровья компонента
type Checker interface {
	Check(ctx context.Context) Check
}

// Reporter собирает проверки и формирует отчёт.
type Reporter struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	version  string
	now      func() time.Time
}

// NewReporter создаёт новый reporter
func NewReporter(version string) *Reporter {
	return &Reporter{
		checkers: make(map[string]Checker),
		version:  version,
		now:      time.Now,
	}
}

// RegisterChecker регистрирует проверку компонента
func (r *Reporter) RegisterChecker(name string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Evaluate выполняет все проверки последовательно.
func (r *Reporter) Evaluate(ctx context.Context) Response {
	r.mu.RLock()
	names := make([]string, 0, len(r.checkers))
	checkers := make(map[string]Checker, len(r.checkers))
	for k, v := range r.checkers {
		names = append(names, k)
		checkers[k] = v
	}
	r.mu.RUnlock()
	sort.Strings(names)

	checks := make([]Check, 0, len(names))
	overallStatus := StatusHealthy

	for _, name := range names {
		check := checkers[name].Check(ctx)
		checks = append(checks, check)

		if check.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
		} else if check.Status == StatusDegraded && overallStatus == StatusHealthy {
			overallStatus = StatusDegraded
		}
	}

	return Response{
		Status:    overallStatus,
		Timestamp: r.now().UTC(),
		Checks:    checks,
		Version:   r.version,
	}
}

// WriteJSON выводит отчёт в JSON.
func (r Response) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SimpleChecker простая проверка с функцией
type SimpleChecker struct {
	name    string
	checkFn func(ctx context.Context) error
}

// NewSimpleChecker создаёт простую проверку
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		checkFn: checkFn,
	}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.checkFn(ctx)
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       c.name,
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}
