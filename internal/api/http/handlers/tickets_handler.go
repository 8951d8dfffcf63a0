package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/cache"
	"github.com/spec-kit/ticket-triage/internal/triage"
)

// TicketsHandler serves the triaged ticket list to support agents.
type TicketsHandler struct {
	cache    *cache.SnapshotCache
	pipeline *triage.Pipeline
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(snapshotCache *cache.SnapshotCache, pipeline *triage.Pipeline) *TicketsHandler {
	return &TicketsHandler{cache: snapshotCache, pipeline: pipeline}
}

// ListTickets GET /tickets. Runs the triage pipeline over the current
// snapshot; ?refresh=true forces a refetch first.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if c.QueryBool("refresh") {
		h.cache.Invalidate(ctx)
	}

	snapshot, err := h.cache.GetOrFetch(ctx)
	if err != nil {
		return err
	}

	tickets := h.pipeline.Run(snapshot.Tickets, snapshot.Lookups)

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromNormalized(&tickets[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.TicketListMeta{Count: len(items), FetchedAt: snapshot.FetchedAt},
	})
}

// RefreshTickets POST /tickets/refresh. Drops the snapshot and refetches.
func (h *TicketsHandler) RefreshTickets(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.cache.Invalidate(ctx)

	snapshot, err := h.cache.GetOrFetch(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"meta": dto.TicketListMeta{Count: len(snapshot.Tickets), FetchedAt: snapshot.FetchedAt},
	})
}
