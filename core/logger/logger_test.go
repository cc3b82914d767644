package logger_test

import (
	"net/http/httptest"
	"testing"

	"remote-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("DevelopmentConsole", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNew_Levels(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = logger.New(&logger.Config{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = logger.New(&logger.Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	logger.Component(zap.New(core), "mfe:css").Warn("manifest missing")
	logger.Component(nil, "mfe:routes").Warn("dropped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "mfe:css", entries[0].ContextMap()[logger.ComponentKey])
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		logger.WithRayID(base, c).Info("without")
		c.Locals("ray_id", "abc")
		logger.WithRayID(base, c).Info("with")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].ContextMap())
	assert.Equal(t, "abc", entries[1].ContextMap()["ray_id"])
}
