package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/cache"
	"github.com/spec-kit/ticket-triage/internal/rules"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	table       *rules.Table
	cache       *cache.SnapshotCache
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, table *rules.Table, snapshotCache *cache.SnapshotCache) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, table: table, cache: snapshotCache}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. A loaded rule table is required; Redis is
// optional backing for the cache, so its state is reported without failing
// the probe.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{
		"rule_table": fiber.Map{"rules": h.table.Len()},
	}
	if err := h.cache.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
	} else {
		depStatus["redis"] = "ok"
	}

	if h.table.Len() == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "rule table not loaded",
				"details": depStatus,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}
