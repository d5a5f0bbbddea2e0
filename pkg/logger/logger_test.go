package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("with creates new instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		newLog := log.With(zap.String("component", "test"))
		assert.NotSame(t, log, newLog)
	})

	t.Run("logging does not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id")
		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message")
			log.Info(ctx, "info message")
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")
		})
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("falls back when nothing configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("prefers context logger over global", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)
		local, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)

		assert.Same(t, global, logger.Log(context.Background()))
		assert.Same(t, local, logger.Log(logger.NewContext(context.Background(), local)))
	})

	t.Run("init global keeps existing logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLogger(logger.Production, "info"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
		assert.Same(t, first, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("missing id", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("with request id", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		assert.Same(t, log, log.WithRequestID(context.Background()))

		ctx := logger.NewRequestIDContext(context.Background(), "req-2")
		assert.NotSame(t, log, log.WithRequestID(ctx))
	})
}
