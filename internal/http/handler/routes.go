package handler

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"catfacts/internal/service"
	"catfacts/internal/upstream"
)

// Messages returned by GET /fact when the upstream call fails.
const (
	msgUpstreamUnreachable = "Unable to fetch fact at the moment."
	msgUpstreamInvalid     = "Received invalid JSON from upstream."
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, factSvc service.FactService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", Index())
	app.Get("/fact", FetchFact(factSvc))
	app.Get("/history", History(factSvc))
}

// HealthCheck reports whether the database file is reachable.
//
// @Summary Readiness check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Index serves the landing page. The page itself calls /fact from the browser.
//
// @Summary Landing page
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, "index.html", nil)
	}
}

// FetchFact fetches a fresh fact from the upstream API, stores it and returns it.
//
// @Summary Fetch and store a random fact
// @Tags facts
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 502 {object} factError
// @Failure 503 {object} factError
// @Failure 500 {object} errorPayload
// @Router /fact [get]
func FetchFact(factSvc service.FactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, err := factSvc.FetchAndStore(c.UserContext())
		switch {
		case err == nil:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"fact": text})
		case errors.Is(err, upstream.ErrUnreachable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(factError{Error: msgUpstreamUnreachable})
		case errors.Is(err, upstream.ErrInvalidResponse):
			return c.Status(fiber.StatusBadGateway).JSON(factError{Error: msgUpstreamInvalid})
		default:
			// Storage failures go through the global error handler.
			return err
		}
	}
}

// History renders stored facts newest first, optionally filtered by the q query parameter.
//
// @Summary Fact history
// @Tags pages
// @Produce html
// @Param q query string false "substring to search for"
// @Success 200 {string} string
// @Failure 500 {object} errorPayload
// @Router /history [get]
func History(factSvc service.FactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		facts, err := factSvc.History(c.UserContext(), q)
		if err != nil {
			return err
		}
		return render(c, "history.html", historyPage{Facts: facts, Q: q})
	}
}
