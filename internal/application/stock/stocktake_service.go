package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// StocktakeService provides application services for counting worksheets
// and the approval transaction.
type StocktakeService struct {
	txnScope TransactionScope
	valuator *stock.Valuator
	guard    ApprovalGuard
	eventBus shared.EventPublisher
}

// NewStocktakeService creates a new StocktakeService
func NewStocktakeService(
	txnScope TransactionScope,
	valuator *stock.Valuator,
	guard ApprovalGuard,
	eventBus shared.EventPublisher,
) *StocktakeService {
	return &StocktakeService{
		txnScope: txnScope,
		valuator: valuator,
		guard:    guard,
		eventBus: eventBus,
	}
}

// GetByID retrieves a stocktake with its lines
func (s *StocktakeService) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*StocktakeResponse, error) {
	var response StocktakeResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		st, err := repos.StocktakeRepo().FindByIDForHotel(ctx, hotelID, id)
		if err != nil {
			return err
		}
		response = ToStocktakeResponse(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByPeriod retrieves the stocktake bound to a period
func (s *StocktakeService) GetByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (*StocktakeResponse, error) {
	var response StocktakeResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		st, err := repos.StocktakeRepo().FindByPeriod(ctx, hotelID, periodID)
		if err != nil {
			return err
		}
		response = ToStocktakeResponse(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RecordCounts records physical counts for a batch of items. Each count
// replaces any previous one for the same item; the whole batch is applied
// atomically or not at all.
func (s *StocktakeService) RecordCounts(ctx context.Context, hotelID, stocktakeID uuid.UUID, req RecordCountsRequest) (*StocktakeResponse, error) {
	return s.mutate(ctx, hotelID, stocktakeID, func(st *stock.Stocktake) error {
		for _, count := range req.Counts {
			if err := st.RecordCount(s.valuator, count.ItemID, count.CountedFull, count.CountedPartial); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddPurchase records a purchase movement in physical units
func (s *StocktakeService) AddPurchase(ctx context.Context, hotelID, stocktakeID uuid.UUID, req RecordMovementRequest) (*StocktakeResponse, error) {
	return s.mutate(ctx, hotelID, stocktakeID, func(st *stock.Stocktake) error {
		return st.AddPurchase(s.valuator, req.ItemID, req.Full, req.Partial)
	})
}

// AddWaste records a waste movement in physical units
func (s *StocktakeService) AddWaste(ctx context.Context, hotelID, stocktakeID uuid.UUID, req RecordMovementRequest) (*StocktakeResponse, error) {
	return s.mutate(ctx, hotelID, stocktakeID, func(st *stock.Stocktake) error {
		return st.AddWaste(s.valuator, req.ItemID, req.Full, req.Partial)
	})
}

// mutate loads the stocktake, applies a draft edit and saves it inside one
// transaction. The owning period must still be open.
func (s *StocktakeService) mutate(ctx context.Context, hotelID, stocktakeID uuid.UUID, fn func(st *stock.Stocktake) error) (*StocktakeResponse, error) {
	var st *stock.Stocktake
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		st, err = repos.StocktakeRepo().FindByIDForHotel(ctx, hotelID, stocktakeID)
		if err != nil {
			return err
		}
		period, err := repos.PeriodRepo().FindByIDForHotel(ctx, hotelID, st.PeriodID)
		if err != nil {
			return err
		}
		if period.IsClosed {
			return stock.NewPeriodCloseError("period %d-%02d is closed; stocktake %s cannot be edited", period.Year, int(period.Month), st.TakingNumber)
		}
		if err := fn(st); err != nil {
			return err
		}
		return repos.StocktakeRepo().SaveWithLines(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, st)

	response := ToStocktakeResponse(st)
	return &response, nil
}

// Approve freezes the stocktake and writes one closing snapshot per counted
// line, all inside a single transaction. Re-approving an already approved
// stocktake returns the existing summary without writing anything; a
// concurrent approval attempt is rejected with a concurrency conflict.
func (s *StocktakeService) Approve(ctx context.Context, hotelID, stocktakeID uuid.UUID, req ApproveStocktakeRequest) (*ApprovalSummaryResponse, error) {
	if s.guard != nil {
		acquired, err := s.guard.Acquire(ctx, stocktakeID)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, stock.NewConcurrencyError("stocktake %s is being approved by another request", stocktakeID)
		}
		defer s.guard.Release(ctx, stocktakeID)
	}

	var (
		st      *stock.Stocktake
		summary ApprovalSummaryResponse
	)
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		st, err = repos.StocktakeRepo().FindByIDForUpdate(ctx, hotelID, stocktakeID)
		if err != nil {
			return err
		}

		if st.Status == stock.StocktakeStatusApproved {
			// A lost response from an earlier approval; resolve the
			// retry from the snapshots the first attempt wrote.
			return s.buildSummary(ctx, repos, st, &summary)
		}

		period, err := repos.PeriodRepo().FindByIDForHotel(ctx, hotelID, st.PeriodID)
		if err != nil {
			return err
		}
		if period.IsClosed {
			return stock.NewPeriodCloseError("period %d-%02d is closed; stocktake %s cannot be approved", period.Year, int(period.Month), st.TakingNumber)
		}

		if err := st.Approve(s.valuator, req.ApprovedBy); err != nil {
			return err
		}

		// Exactly one snapshot per counted line; upserts keep a retry
		// after a lost commit from doubling the rows.
		counted := st.CountedLineSlice()
		closingValue := decimal.Zero
		for i := range counted {
			snapshot := stock.SnapshotFromLine(hotelID, st.PeriodID, &counted[i])
			if err := repos.SnapshotRepo().Upsert(ctx, snapshot); err != nil {
				return err
			}
			closingValue = closingValue.Add(snapshot.ClosingStockValue)
		}

		if err := repos.StocktakeRepo().SaveWithLines(ctx, st); err != nil {
			return err
		}

		summary = ApprovalSummaryResponse{
			StocktakeID:   st.ID,
			PeriodID:      st.PeriodID,
			Status:        st.Status.String(),
			SnapshotCount: len(counted),
			ClosingValue:  stock.DisplayValue(closingValue),
			ApprovedAt:    st.ApprovedAt,
			ApprovedBy:    st.ApprovedBy,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, st)

	return &summary, nil
}

// buildSummary reconstructs an approval summary from persisted snapshots.
func (s *StocktakeService) buildSummary(ctx context.Context, repos TransactionalRepositories, st *stock.Stocktake, out *ApprovalSummaryResponse) error {
	snapshots, err := repos.SnapshotRepo().FindByPeriod(ctx, st.HotelID, st.PeriodID)
	if err != nil {
		return err
	}
	closingValue := decimal.Zero
	for i := range snapshots {
		closingValue = closingValue.Add(snapshots[i].ClosingStockValue)
	}
	*out = ApprovalSummaryResponse{
		StocktakeID:   st.ID,
		PeriodID:      st.PeriodID,
		Status:        st.Status.String(),
		SnapshotCount: len(snapshots),
		ClosingValue:  stock.DisplayValue(closingValue),
		ApprovedAt:    st.ApprovedAt,
		ApprovedBy:    st.ApprovedBy,
	}
	return nil
}

// VarianceReport builds the variance report for a stocktake
func (s *StocktakeService) VarianceReport(ctx context.Context, hotelID, stocktakeID uuid.UUID) (*VarianceReportResponse, error) {
	var response VarianceReportResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		st, err := repos.StocktakeRepo().FindByIDForHotel(ctx, hotelID, stocktakeID)
		if err != nil {
			return err
		}
		response = ToVarianceReportResponse(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Snapshots returns the closing snapshots of a period
func (s *StocktakeService) Snapshots(ctx context.Context, hotelID, periodID uuid.UUID) ([]SnapshotResponse, error) {
	var response []SnapshotResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		snapshots, err := repos.SnapshotRepo().FindByPeriod(ctx, hotelID, periodID)
		if err != nil {
			return err
		}
		response = ToSnapshotResponses(snapshots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *StocktakeService) publishEvents(ctx context.Context, st *stock.Stocktake) {
	if s.eventBus == nil || st == nil {
		return
	}
	events := st.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	st.ClearDomainEvents()
}
