package middleware

import (
	"time"

	"github.com/amirphl/email-feedback/logger"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// AccessLog writes one structured line per request. skip suppresses paths
// such as health probes.
func AccessLog(log *logger.Logger, skip ...string) fiber.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		kv := []any{
			"request_id", requestid.FromContext(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
			"bytes_in", len(c.Body()),
			"bytes_out", responseSize(c),
			"referer", c.Get(fiber.HeaderReferer),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
		return err
	}
}

// responseSize leaves streamed bodies unread; their size is unknown until sent
func responseSize(c fiber.Ctx) int {
	if c.Response().IsBodyStream() {
		return -1
	}
	return len(c.Response().Body())
}
