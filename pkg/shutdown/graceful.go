// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

const (
	logSignalReceived = "shutdown signal received"
	logContextDone    = "parent context done, shutting down"
	logHookFailed     = "shutdown hook failed"
	logHooksTimedOut  = "shutdown hooks did not finish before timeout"
)

// Hook - функция освобождения ресурса при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до сигнала SIGINT/SIGTERM или отмены ctx,
// затем выполняет хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)
	select {
	case sig := <-sigCh:
		log.Info(ctx, logSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, logContextDone)
	}

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
// Возвращает объединенные ошибки хуков либо context.DeadlineExceeded.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.Log(ctx)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, logHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(errs...)
	case <-ctx.Done():
		log.Warn(ctx, logHooksTimedOut, zap.Duration("timeout", timeout))
		return ctx.Err()
	}
}
