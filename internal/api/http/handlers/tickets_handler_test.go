package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/cache"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/rules"
	"github.com/spec-kit/ticket-triage/internal/triage"
)

type snapshotFetcher struct {
	calls    int
	snapshot domain.Snapshot
}

func (f *snapshotFetcher) FetchAll(ctx context.Context) (domain.Snapshot, error) {
	f.calls++
	return f.snapshot, nil
}

func testApp(t *testing.T, fetcher *snapshotFetcher) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	csv := "account_tier,priority,status,environment,ticket_type,escalated,past_due,Score\n" +
		"A,Urgent,New,Production,Incident or Problem,False,False,76\n" +
		"B,Low,Open,Production,Service request,False,False,5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.csv"), []byte(csv), 0o644))
	table, err := rules.Load(dir, "rules.csv")
	require.NoError(t, err)

	snapshotCache := cache.NewSnapshotCache(fetcher, nil, zap.NewNop())
	pipeline := triage.NewPipeline(
		triage.NewNormalizer(zap.NewNop(), nil),
		triage.NewScorer(table),
		nil,
		zap.NewNop(),
	)

	app := fiber.New()
	handler := NewTicketsHandler(snapshotCache, pipeline)
	app.Get("/tickets", handler.ListTickets)
	app.Post("/tickets/refresh", handler.RefreshTickets)
	return app
}

func testSnapshot() domain.Snapshot {
	incident := "Incident or Problem"
	service := "Service request"
	dept := int64(20)
	deptB := int64(21)
	return domain.Snapshot{
		Tickets: []domain.RawTicket{
			{ID: 1, Subject: "slow reports", Status: 2, Priority: 1, CreatedAt: "2024-01-02T00:00:00Z",
				DepartmentID: &deptB, CustomFields: domain.RawCustomFields{TicketType: &service}},
			{ID: 2, Subject: "prod outage", Status: 6, Priority: 4, CreatedAt: "2024-01-03T00:00:00Z",
				DepartmentID: &dept, CustomFields: domain.RawCustomFields{TicketType: &incident}},
		},
		Lookups: domain.Lookups{
			Companies: map[int64]domain.Company{
				20: {Name: "Acme", TAMName: "Priya Shah", AccountTier: "A"},
				21: {Name: "Globex", TAMName: "Lee Wong", AccountTier: "B"},
			},
		},
		FetchedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListTickets_ReturnsScoredOrder(t *testing.T) {
	fetcher := &snapshotFetcher{snapshot: testSnapshot()}
	app := testApp(t, fetcher)

	resp, err := app.Test(httptest.NewRequest("GET", "/tickets", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []struct {
			ID          int64  `json:"id"`
			Score       int    `json:"score"`
			CompanyName string `json:"company_name"`
			Status      string `json:"status"`
		} `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Meta.Count)
	assert.Equal(t, int64(2), body.Data[0].ID, "urgent incident sorts first")
	assert.Equal(t, 76, body.Data[0].Score)
	assert.Equal(t, "Acme", body.Data[0].CompanyName)
	assert.Equal(t, "New", body.Data[0].Status)
	assert.Equal(t, int64(1), body.Data[1].ID)
	assert.Equal(t, 5, body.Data[1].Score)
}

func TestListTickets_ServesFromCache(t *testing.T) {
	fetcher := &snapshotFetcher{snapshot: testSnapshot()}
	app := testApp(t, fetcher)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/tickets", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 1, fetcher.calls)
}

func TestListTickets_RefreshQueryForcesFetch(t *testing.T) {
	fetcher := &snapshotFetcher{snapshot: testSnapshot()}
	app := testApp(t, fetcher)

	_, err := app.Test(httptest.NewRequest("GET", "/tickets", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/tickets?refresh=true", nil))
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}

func TestRefreshTickets_InvalidatesSnapshot(t *testing.T) {
	fetcher := &snapshotFetcher{snapshot: testSnapshot()}
	app := testApp(t, fetcher)

	_, err := app.Test(httptest.NewRequest("GET", "/tickets", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/tickets/refresh", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, fetcher.calls)

	var body struct {
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Meta.Count)
}
