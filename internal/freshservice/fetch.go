package freshservice

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// Open-ticket statuses requested from the filter endpoint. Resolved, closed,
// rejected, and duplicate tickets never enter the triage list.
var openStatusCodes = []int{2, 3, 6, 7, 8, 9, 10, 11, 12}

type agentRecord struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type departmentRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CustomFields struct {
		TAMName     *string `json:"tam_name"`
		AccountTier *string `json:"account_tier"`
	} `json:"custom_fields"`
}

type groupRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FetchAgents pages through all agents.
func (c *Client) FetchAgents(ctx context.Context) (map[int64]domain.Agent, error) {
	agents := make(map[int64]domain.Agent)
	err := c.forEachPage(ctx, "agents", func(page int) (int, error) {
		var payload struct {
			Agents []agentRecord `json:"agents"`
		}
		path := fmt.Sprintf("/api/v2/agents?per_page=%d&page=%d", c.perPage, page)
		if err := c.getJSON(ctx, path, &payload); err != nil {
			return 0, err
		}
		for _, a := range payload.Agents {
			agents[a.ID] = domain.Agent{
				Name:  strings.TrimSpace(a.FirstName + " " + a.LastName),
				Email: a.Email,
			}
		}
		return len(payload.Agents), nil
	})
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// FetchCompanies pages through all departments. TAM name and account tier
// live in department custom fields; missing values fall back to the unknown
// sentinels so a partially configured department still resolves.
func (c *Client) FetchCompanies(ctx context.Context) (map[int64]domain.Company, error) {
	companies := make(map[int64]domain.Company)
	err := c.forEachPage(ctx, "departments", func(page int) (int, error) {
		var payload struct {
			Departments []departmentRecord `json:"departments"`
		}
		path := fmt.Sprintf("/api/v2/departments?per_page=%d&page=%d", c.perPage, page)
		if err := c.getJSON(ctx, path, &payload); err != nil {
			return 0, err
		}
		for _, d := range payload.Departments {
			company := domain.Company{
				Name:        d.Name,
				TAMName:     domain.UnknownTAM,
				AccountTier: domain.UnknownTier,
			}
			if d.CustomFields.TAMName != nil {
				company.TAMName = *d.CustomFields.TAMName
			}
			if d.CustomFields.AccountTier != nil {
				company.AccountTier = *d.CustomFields.AccountTier
			}
			companies[d.ID] = company
		}
		return len(payload.Departments), nil
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// FetchGroups pages through all groups.
func (c *Client) FetchGroups(ctx context.Context) (map[int64]string, error) {
	groups := make(map[int64]string)
	err := c.forEachPage(ctx, "groups", func(page int) (int, error) {
		var payload struct {
			Groups []groupRecord `json:"groups"`
		}
		path := fmt.Sprintf("/api/v2/groups?per_page=%d&page=%d", c.perPage, page)
		if err := c.getJSON(ctx, path, &payload); err != nil {
			return 0, err
		}
		for _, g := range payload.Groups {
			groups[g.ID] = g.Name
		}
		return len(payload.Groups), nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// FetchTickets retrieves all open tickets via the filter endpoint. Paging
// stops at the terminal page: one holding fewer than the full page size, or
// an empty/absent collection.
func (c *Client) FetchTickets(ctx context.Context) ([]domain.RawTicket, error) {
	var tickets []domain.RawTicket

	clauses := make([]string, 0, len(openStatusCodes))
	for _, code := range openStatusCodes {
		clauses = append(clauses, fmt.Sprintf("status: %d", code))
	}
	query := url.QueryEscape(`"` + strings.Join(clauses, " OR ") + `"`)

	err := c.forEachPage(ctx, "tickets", func(page int) (int, error) {
		var payload struct {
			Tickets []domain.RawTicket `json:"tickets"`
		}
		path := fmt.Sprintf("/api/v2/tickets/filter?query=%s&per_page=%d&page=%d", query, c.perPage, page)
		if err := c.getJSON(ctx, path, &payload); err != nil {
			return 0, err
		}
		tickets = append(tickets, payload.Tickets...)
		c.logger.Info("ticket page retrieved",
			zap.Int("page", page),
			zap.Int("count", len(payload.Tickets)))
		return len(payload.Tickets), nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("total tickets retrieved", zap.Int("count", len(tickets)))
	return tickets, nil
}

// FetchAll captures a full snapshot: lookups first, then the ticket walk.
func (c *Client) FetchAll(ctx context.Context) (domain.Snapshot, error) {
	companies, err := c.FetchCompanies(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	agents, err := c.FetchAgents(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	groups, err := c.FetchGroups(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	tickets, err := c.FetchTickets(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		Tickets: tickets,
		Lookups: domain.Lookups{
			Agents:    agents,
			Companies: companies,
			Groups:    groups,
		},
		FetchedAt: time.Now().UTC(),
	}, nil
}

// forEachPage walks numbered pages until fetch reports a terminal page. The
// terminal conditions match the upstream contract: an empty page always
// stops, and a page below the full page size is the last one.
func (c *Client) forEachPage(ctx context.Context, resource string, fetch func(page int) (int, error)) error {
	for page := 1; ; page++ {
		count, err := fetch(page)
		if err != nil {
			return err
		}
		c.metrics.RecordFetchPage(resource)
		if count == 0 {
			if page == 1 {
				c.logger.Warn("no records found", zap.String("resource", resource))
			}
			return nil
		}
		if count <= c.perPage-1 {
			return nil
		}
		if err := c.pausePage(ctx); err != nil {
			return err
		}
	}
}
