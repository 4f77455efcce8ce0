package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeriodService(f *fixture) *PeriodService {
	return NewPeriodService(f.scope, f.valuator, f.events)
}

func monthRequest(year int, month time.Month) CreatePeriodRequest {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return CreatePeriodRequest{
		Year:      year,
		Month:     int(month),
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
	}
}

func TestPeriodService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first period opens with unconfirmed zero lines", func(t *testing.T) {
		f := newFixture()
		seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		seedItem(t, f, "WINE-001", stock.UOMStandardCase, d("12"), "", d("72"))
		inactive := seedItem(t, f, "OLD-001", stock.UOMBagInBox, decimal.Zero, "", d("40"))
		inactive.Deactivate()
		svc := newPeriodService(f)

		resp, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))

		require.NoError(t, err)
		assert.Equal(t, string(stock.PeriodStatusOpen), resp.Status)

		st, err := f.takes.FindByPeriod(ctx, f.hotelID, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, stock.StocktakeStatusDraft, st.Status)
		require.Len(t, st.Lines, 2) // inactive item excluded
		for _, line := range st.Lines {
			assert.True(t, line.OpeningQty.IsZero())
			assert.True(t, line.OpeningUnconfirmed)
		}
	})

	t.Run("openings carry forward from predecessor snapshots", func(t *testing.T) {
		f := newFixture()
		beer := seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		wine := seedItem(t, f, "WINE-001", stock.UOMStandardCase, d("12"), "", d("72"))
		svc := newPeriodService(f)
		stSvc := newStocktakeService(f)

		march, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)
		marchTake, err := f.takes.FindByPeriod(ctx, f.hotelID, march.ID)
		require.NoError(t, err)
		_, err = stSvc.RecordCounts(ctx, f.hotelID, marchTake.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("2"), CountedPartial: d("5")},
			{ItemID: wine.ID, CountedFull: d("3"), CountedPartial: d("4")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, marchTake.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)
		_, err = svc.Close(ctx, f.hotelID, march.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.NoError(t, err)

		april, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.April))
		require.NoError(t, err)

		st, err := f.takes.FindByPeriod(ctx, f.hotelID, april.ID)
		require.NoError(t, err)
		require.Len(t, st.Lines, 2)
		byItem := make(map[uuid.UUID]stock.StocktakeLine)
		for _, line := range st.Lines {
			byItem[line.ItemID] = line
		}

		// 2 kegs and 5 pints close as 75.42 pints open.
		beerLine := byItem[beer.ID]
		assert.True(t, beerLine.OpeningQty.Equal(d("75.42")), "got %s", beerLine.OpeningQty)
		assert.False(t, beerLine.OpeningUnconfirmed)

		wineLine := byItem[wine.ID]
		assert.True(t, wineLine.OpeningQty.Equal(d("40")), "got %s", wineLine.OpeningQty)
		assert.False(t, wineLine.OpeningUnconfirmed)
	})

	t.Run("item added after the predecessor opens unconfirmed", func(t *testing.T) {
		f := newFixture()
		beer := seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		svc := newPeriodService(f)
		stSvc := newStocktakeService(f)

		march, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)
		marchTake, err := f.takes.FindByPeriod(ctx, f.hotelID, march.ID)
		require.NoError(t, err)
		_, err = stSvc.RecordCounts(ctx, f.hotelID, marchTake.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("1"), CountedPartial: d("0")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, marchTake.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)

		newcomer := seedItem(t, f, "GIN-001", stock.UOMBulkLiquidFraction, decimal.Zero, "", d("24"))

		april, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.April))
		require.NoError(t, err)
		st, err := f.takes.FindByPeriod(ctx, f.hotelID, april.ID)
		require.NoError(t, err)

		for _, line := range st.Lines {
			if line.ItemID == newcomer.ID {
				assert.True(t, line.OpeningQty.IsZero())
				assert.True(t, line.OpeningUnconfirmed)
			}
			if line.ItemID == beer.ID {
				assert.True(t, line.OpeningQty.Equal(d("35.21")), "got %s", line.OpeningQty)
				assert.False(t, line.OpeningUnconfirmed)
			}
		}
	})

	t.Run("rejects a duplicate month", func(t *testing.T) {
		f := newFixture()
		svc := newPeriodService(f)

		_, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)

		_, err = svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.Error(t, err)
		assert.True(t, stock.IsValidationError(err))
	})

	t.Run("surfaces a failing duplicate lookup instead of saving", func(t *testing.T) {
		f := newFixture()
		failing := &failingPeriodRepo{StockPeriodRepository: f.periods}
		scope := NewNoOpTransactionScope(f.items, failing, f.takes, f.snapshots)
		svc := NewPeriodService(scope, f.valuator, f.events)

		_, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))

		require.ErrorIs(t, err, errPeriodLookup)
		assert.Empty(t, f.periods.periods)
	})
}

var errPeriodLookup = errors.New("period lookup failed")

// failingPeriodRepo simulates a transient store failure on the
// duplicate-month lookup.
type failingPeriodRepo struct {
	stock.StockPeriodRepository
}

func (r *failingPeriodRepo) FindByMonth(context.Context, uuid.UUID, int, time.Month) (*stock.StockPeriod, error) {
	return nil, errPeriodLookup
}

func TestPeriodService_Close(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *PeriodService, *StocktakeService, *stock.StockItem, *PeriodResponse, *stock.Stocktake) {
		f := newFixture()
		beer := seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		svc := newPeriodService(f)
		stSvc := newStocktakeService(f)
		period, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)
		st, err := f.takes.FindByPeriod(ctx, f.hotelID, period.ID)
		require.NoError(t, err)
		return f, svc, stSvc, beer, period, st
	}

	t.Run("requires an approved stocktake", func(t *testing.T) {
		f, svc, _, _, period, _ := setup(t)

		_, err := svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})

		require.Error(t, err)
		assert.True(t, stock.IsPeriodCloseError(err))
	})

	t.Run("closes after approval and rejects a second close", func(t *testing.T) {
		f, svc, stSvc, beer, period, st := setup(t)
		_, err := stSvc.RecordCounts(ctx, f.hotelID, st.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("1"), CountedPartial: d("0")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, st.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)

		resp, err := svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.NoError(t, err)
		assert.Equal(t, string(stock.PeriodStatusClosed), resp.Status)
		assert.Equal(t, "manager", resp.ClosedBy)
		assert.Len(t, f.events.GetEventsByType(stock.EventTypePeriodClosed), 1)

		_, err = svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.Error(t, err)
		assert.True(t, stock.IsPeriodCloseError(err))
	})

	t.Run("rejects an approved partial stocktake", func(t *testing.T) {
		f := newFixture()
		beer := seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		seedItem(t, f, "WINE-001", stock.UOMStandardCase, d("12"), "", d("72"))
		svc := newPeriodService(f)
		stSvc := newStocktakeService(f)

		req := monthRequest(2026, time.March)
		req.Partial = true
		period, err := svc.Create(ctx, f.hotelID, req)
		require.NoError(t, err)
		st, err := f.takes.FindByPeriod(ctx, f.hotelID, period.ID)
		require.NoError(t, err)

		// Only one of the two items gets counted.
		_, err = stSvc.RecordCounts(ctx, f.hotelID, st.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("2"), CountedPartial: d("0")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, st.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)

		_, err = svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.Error(t, err)
		assert.True(t, stock.IsPeriodCloseError(err))

		refreshed, err := f.periods.FindByIDForHotel(ctx, f.hotelID, period.ID)
		require.NoError(t, err)
		assert.False(t, refreshed.IsClosed)
	})

	t.Run("rewrites snapshots lost to an interrupted approval", func(t *testing.T) {
		f, svc, stSvc, beer, period, st := setup(t)
		_, err := stSvc.RecordCounts(ctx, f.hotelID, st.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("2"), CountedPartial: d("0")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, st.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)

		// Simulate the snapshot row going missing.
		f.snapshots.snapshots = make(map[string]*stock.StockSnapshot)

		_, err = svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.NoError(t, err)

		count, err := f.snapshots.CountByPeriod(ctx, f.hotelID, period.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestPeriodService_Reopen(t *testing.T) {
	ctx := context.Background()

	t.Run("reopens the period and returns its stocktake to draft", func(t *testing.T) {
		f := newFixture()
		beer := seedItem(t, f, "BEER-001", stock.UOMDraught, decimal.Zero, stock.Keg20L, d("105.63"))
		svc := newPeriodService(f)
		stSvc := newStocktakeService(f)
		period, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)
		st, err := f.takes.FindByPeriod(ctx, f.hotelID, period.ID)
		require.NoError(t, err)
		_, err = stSvc.RecordCounts(ctx, f.hotelID, st.ID, RecordCountsRequest{Counts: []RecordCountRequest{
			{ItemID: beer.ID, CountedFull: d("1"), CountedPartial: d("0")},
		}})
		require.NoError(t, err)
		_, err = stSvc.Approve(ctx, f.hotelID, st.ID, ApproveStocktakeRequest{ApprovedBy: "manager"})
		require.NoError(t, err)
		_, err = svc.Close(ctx, f.hotelID, period.ID, ClosePeriodRequest{ClosedBy: "manager"})
		require.NoError(t, err)

		resp, err := svc.Reopen(ctx, f.hotelID, period.ID, ReopenPeriodRequest{ReopenedBy: "auditor"})

		require.NoError(t, err)
		assert.Equal(t, string(stock.PeriodStatusReopened), resp.Status)
		assert.Equal(t, "manager", resp.ClosedBy) // close stamps survive
		assert.Equal(t, "auditor", resp.ReopenedBy)

		reloaded, err := f.takes.FindByPeriod(ctx, f.hotelID, period.ID)
		require.NoError(t, err)
		assert.Equal(t, stock.StocktakeStatusDraft, reloaded.Status)
		assert.Len(t, f.events.GetEventsByType(stock.EventTypePeriodReopened), 1)
	})

	t.Run("rejects reopening a period that was never closed", func(t *testing.T) {
		f := newFixture()
		svc := newPeriodService(f)
		period, err := svc.Create(ctx, f.hotelID, monthRequest(2026, time.March))
		require.NoError(t, err)

		_, err = svc.Reopen(ctx, f.hotelID, period.ID, ReopenPeriodRequest{ReopenedBy: "auditor"})

		require.Error(t, err)
		assert.True(t, stock.IsDataIntegrityError(err))
	})
}
