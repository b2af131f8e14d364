package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catfacts/internal/logging"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLen+1))

		resp, _ := app.Test(req)

		rid := resp.Header.Get(RequestIDHeader)
		assert.Len(t, rid, 36)
	})
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("abc-123"))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID("has space"))
	assert.False(t, validRequestID("tab\there"))
	assert.False(t, validRequestID("caf\xc3\xa9"))
	assert.False(t, validRequestID(strings.Repeat("x", maxRequestIDLen+1)))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(logging.New(&buf, time.UTC, "info")))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test?q=ignored", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.Equal(t, "info", logData["level"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLoggerHandlerError(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Logger(logging.New(&buf, time.UTC, "info")))

	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("disk I/O error")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	t.Run("plain error is logged as 500", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/boom", nil))
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
		assert.Equal(t, "error", logData["level"])
		assert.Equal(t, "disk I/O error", logData["error"])
	})

	t.Run("fiber error keeps its code", func(t *testing.T) {
		buf.Reset()
		app.Test(httptest.NewRequest("GET", "/teapot", nil))

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, float64(fiber.StatusTeapot), logData["status"])
		assert.Equal(t, "info", logData["level"])
	})
}
