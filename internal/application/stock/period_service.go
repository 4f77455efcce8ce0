package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// PeriodService drives the period lifecycle: opening a period seeds its
// stocktake from the predecessor's closing snapshots, closing requires an
// approved stocktake, reopening returns both to an editable state.
type PeriodService struct {
	txnScope TransactionScope
	valuator *stock.Valuator
	eventBus shared.EventPublisher
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(txnScope TransactionScope, valuator *stock.Valuator, eventBus shared.EventPublisher) *PeriodService {
	return &PeriodService{
		txnScope: txnScope,
		valuator: valuator,
		eventBus: eventBus,
	}
}

// GetByID retrieves a period by ID
func (s *PeriodService) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*PeriodResponse, error) {
	var response PeriodResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		period, err := repos.PeriodRepo().FindByIDForHotel(ctx, hotelID, id)
		if err != nil {
			return err
		}
		response = ToPeriodResponse(period)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves a paginated list of periods
func (s *PeriodService) List(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]PeriodResponse, error) {
	var response []PeriodResponse
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		periods, err := repos.PeriodRepo().FindAllForHotel(ctx, hotelID, filter)
		if err != nil {
			return err
		}
		response = ToPeriodResponses(periods)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Create opens a new period and seeds its stocktake. Every active item gets
// a line; openings carry forward from the predecessor period's closing
// snapshots, reconstructed through the item's own conversion. An item with
// no predecessor snapshot opens at zero, flagged unconfirmed.
func (s *PeriodService) Create(ctx context.Context, hotelID uuid.UUID, req CreatePeriodRequest) (*PeriodResponse, error) {
	period, err := stock.NewStockPeriod(hotelID, req.Year, time.Month(req.Month), req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	err = s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.PeriodRepo().FindByMonth(ctx, hotelID, req.Year, time.Month(req.Month))
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return stock.NewValidationError("period %d-%02d already exists", req.Year, req.Month)
		}
		if err := repos.PeriodRepo().Save(ctx, period); err != nil {
			return err
		}

		takingNumber, err := repos.StocktakeRepo().GenerateTakingNumber(ctx, hotelID)
		if err != nil {
			return err
		}
		st, err := stock.NewStocktake(hotelID, period.ID, takingNumber, req.Partial)
		if err != nil {
			return err
		}

		predecessor, err := repos.PeriodRepo().FindPredecessor(ctx, hotelID, period.StartDate)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		items, err := repos.ItemRepo().FindActiveForHotel(ctx, hotelID)
		if err != nil {
			return err
		}
		for i := range items {
			item := &items[i]
			opening, unconfirmed, err := s.openingFor(ctx, repos, predecessor, item)
			if err != nil {
				return err
			}
			if err := st.AddLine(item, opening, unconfirmed); err != nil {
				return err
			}
		}

		return repos.StocktakeRepo().SaveWithLines(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, period)

	response := ToPeriodResponse(period)
	return &response, nil
}

// openingFor reconstructs an item's opening quantity from the predecessor
// period's closing snapshot.
func (s *PeriodService) openingFor(ctx context.Context, repos TransactionalRepositories, predecessor *stock.StockPeriod, item *stock.StockItem) (decimal.Decimal, bool, error) {
	if predecessor == nil {
		return decimal.Zero, true, nil
	}
	snapshot, err := repos.SnapshotRepo().FindByItemAndPeriod(ctx, item.HotelID, item.ID, predecessor.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Item was not counted last period. Zero here is a guess,
			// not a fact.
			return decimal.Zero, true, nil
		}
		return decimal.Zero, false, err
	}
	opening, err := snapshot.OpeningQuantity(s.valuator.Converter(), item.ConversionSpec())
	if err != nil {
		return decimal.Zero, false, err
	}
	return opening, false, nil
}

// Close stamps a period closed. The period's stocktake must already be
// approved; closing never performs the approval itself. Missing snapshots
// from an interrupted approval are re-written before the close commits.
func (s *PeriodService) Close(ctx context.Context, hotelID, periodID uuid.UUID, req ClosePeriodRequest) (*PeriodResponse, error) {
	var period *stock.StockPeriod
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		period, err = repos.PeriodRepo().FindByIDForHotel(ctx, hotelID, periodID)
		if err != nil {
			return err
		}

		st, err := repos.StocktakeRepo().FindByPeriod(ctx, hotelID, periodID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return stock.NewPeriodCloseError("period %d-%02d has no stocktake", period.Year, int(period.Month))
			}
			return err
		}
		if st.Status != stock.StocktakeStatusApproved {
			return stock.NewPeriodCloseError("period %d-%02d cannot close: stocktake %s is %s, not approved", period.Year, int(period.Month), st.TakingNumber, st.Status)
		}
		if st.Partial {
			return stock.NewPeriodCloseError("period %d-%02d cannot close: stocktake %s is partial, uncounted items would carry stale snapshots", period.Year, int(period.Month), st.TakingNumber)
		}

		counted := st.CountedLineSlice()
		snapshotCount, err := repos.SnapshotRepo().CountByPeriod(ctx, hotelID, periodID)
		if err != nil {
			return err
		}
		if snapshotCount != int64(len(counted)) {
			for i := range counted {
				if err := repos.SnapshotRepo().Upsert(ctx, stock.SnapshotFromLine(hotelID, periodID, &counted[i])); err != nil {
					return err
				}
			}
		}

		if err := period.Close(req.ClosedBy); err != nil {
			return err
		}
		return repos.PeriodRepo().Save(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, period)

	response := ToPeriodResponse(period)
	return &response, nil
}

// Reopen makes a closed period editable again and returns its stocktake to
// DRAFT in the same transaction.
func (s *PeriodService) Reopen(ctx context.Context, hotelID, periodID uuid.UUID, req ReopenPeriodRequest) (*PeriodResponse, error) {
	var period *stock.StockPeriod
	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		period, err = repos.PeriodRepo().FindByIDForHotel(ctx, hotelID, periodID)
		if err != nil {
			return err
		}
		if err := period.Reopen(req.ReopenedBy); err != nil {
			return err
		}

		st, err := repos.StocktakeRepo().FindByPeriod(ctx, hotelID, periodID)
		if err != nil {
			return err
		}
		if err := st.Reopen(); err != nil {
			return err
		}

		if err := repos.StocktakeRepo().Save(ctx, st); err != nil {
			return err
		}
		return repos.PeriodRepo().Save(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, period)

	response := ToPeriodResponse(period)
	return &response, nil
}

func (s *PeriodService) publishEvents(ctx context.Context, period *stock.StockPeriod) {
	if s.eventBus == nil || period == nil {
		return
	}
	events := period.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	period.ClearDomainEvents()
}
