package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirphl/email-feedback/logger"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMetricsUsesRouteTemplate(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/items/:id", func(c fiber.Ctx) error { return c.SendString(c.Params("id")) })

	labels := prometheus.Labels{"method": fiber.MethodGet, "route": "/items/:id", "status": "200"}
	before := testutil.ToFloat64(httpRequestsTotal.With(labels))

	for _, id := range []string{"1", "2", "3"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(httpRequestsTotal.With(labels)))
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestMetricsCollapsesUnmatchedPaths(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Use(func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	labels := prometheus.Labels{"method": fiber.MethodGet, "route": "unmatched", "status": "404"}
	before := testutil.ToFloat64(httpRequestsTotal.With(labels))

	for _, p := range []string{"/a", "/b/c", "/wp-login.php"} {
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, p, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(httpRequestsTotal.With(labels)))
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-7" }}))
	app.Use(AccessLog(logger.NewWriter(&buf, zapcore.DebugLevel), "/health"))
	app.Get("/health", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/ok", func(c fiber.Ctx) error { return c.SendString("hello") })
	app.Get("/missing", func(c fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/boom", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusBadGateway) })

	for _, p := range []string{"/health", "/ok", "/missing", "/boom"} {
		req := httptest.NewRequest(fiber.MethodGet, p, nil)
		req.Header.Set(fiber.HeaderUserAgent, "probe/1")
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "/ok", lines[0]["path"])
	assert.Equal(t, "rid-7", lines[0]["request_id"])
	assert.Equal(t, "probe/1", lines[0]["user_agent"])
	assert.EqualValues(t, 200, lines[0]["status"])
	assert.EqualValues(t, len("hello"), lines[0]["bytes_out"])

	assert.Equal(t, "warn", lines[1]["level"])
	assert.EqualValues(t, 404, lines[1]["status"])

	assert.Equal(t, "error", lines[2]["level"])
	assert.EqualValues(t, 502, lines[2]["status"])

	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l["path"].(string), "/health"))
	}
}
