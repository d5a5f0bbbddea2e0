// Package resilience содержит механизмы обеспечения отказоустойчивости.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - пробные запросы после Timeout.
	StateHalfOpen
)

// String возвращает имя состояния для логов.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробных запросов.
	Timeout time.Duration
	// SuccessThreshold - число успешных пробных запросов до закрытия.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
// Нулевые поля config заменяются значениями по умолчанию.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig()
	if config.ErrorThreshold <= 0 {
		config.ErrorThreshold = def.ErrorThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = def.SuccessThreshold
	}

	return &CircuitBreaker{
		name:            name,
		config:          config,
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute выполняет fn, если Circuit Breaker пропускает запрос.
// isFailure решает, считается ли ошибка отказом; nil означает "любая ошибка".
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error, isFailure func(error) bool) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	failed := err != nil
	if failed && isFailure != nil {
		failed = isFailure(err)
	}
	cb.RecordResult(ctx, failed)
	return err
}

// AllowRequest проверяет возможность выполнения запроса.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.config.Timeout {
			return false
		}
		cb.setState(ctx, StateHalfOpen)
		return true
	default:
		return false
	}
}

// RecordResult учитывает результат выполненного запроса.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if failed {
		cb.onFailure(ctx)
		return
	}
	cb.onSuccess(ctx)
}

func (cb *CircuitBreaker) onFailure(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			cb.trip(ctx)
		}
	case StateHalfOpen:
		cb.trip(ctx)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			logger.Log(ctx).Info(ctx, LogCircuitReset, zap.String("circuit_breaker", cb.name))
			cb.setState(ctx, StateClosed)
		}
	}
}

func (cb *CircuitBreaker) trip(ctx context.Context) {
	logger.Log(ctx).Warn(ctx, LogCircuitTrip,
		zap.String("circuit_breaker", cb.name),
		zap.Int("failures", cb.failures))
	cb.setState(ctx, StateOpen)
}

// setState вызывается под cb.mu.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("old_state", cb.state),
		zap.Stringer("new_state", state))

	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
}

// State возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
