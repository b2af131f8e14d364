package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Logger is a middleware that writes one structured access log entry per request.
// Fields: request_id, method, path, status, latency (milliseconds) and, for failed
// handlers, the error text. The error never reaches the client.
func Logger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := statusOf(c, err)

		entry := log.WithFields(logrus.Fields{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})

		switch {
		case err != nil && status >= fiber.StatusInternalServerError:
			entry.WithError(err).Error("request failed")
		case status >= fiber.StatusInternalServerError:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}

		return err
	}
}

// statusOf predicts the status the global error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
