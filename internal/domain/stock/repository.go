package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
)

// StockItemRepository persists StockItem aggregates
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*StockItem, error)
	FindBySKU(ctx context.Context, hotelID uuid.UUID, sku string) (*StockItem, error)
	FindActiveForHotel(ctx context.Context, hotelID uuid.UUID) ([]StockItem, error)
	FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]StockItem, error)
	CountForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *StockItem) error
}

// StockPeriodRepository persists StockPeriod aggregates
type StockPeriodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockPeriod, error)
	FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*StockPeriod, error)
	FindByMonth(ctx context.Context, hotelID uuid.UUID, year int, month time.Month) (*StockPeriod, error)
	// FindPredecessor returns the period ending latest strictly before the
	// given start date, or shared.ErrNotFound for the first period.
	FindPredecessor(ctx context.Context, hotelID uuid.UUID, startDate time.Time) (*StockPeriod, error)
	FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]StockPeriod, error)
	Save(ctx context.Context, period *StockPeriod) error
}

// StocktakeRepository persists Stocktake aggregates with their lines
type StocktakeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Stocktake, error)
	FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*Stocktake, error)
	// FindByIDForUpdate loads the stocktake under a row-level exclusive
	// lock. Only meaningful inside a transaction scope.
	FindByIDForUpdate(ctx context.Context, hotelID, id uuid.UUID) (*Stocktake, error)
	FindByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (*Stocktake, error)
	FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]Stocktake, error)
	GenerateTakingNumber(ctx context.Context, hotelID uuid.UUID) (string, error)
	Save(ctx context.Context, st *Stocktake) error
	SaveWithLines(ctx context.Context, st *Stocktake) error
}

// StockSnapshotRepository persists immutable closing snapshots
type StockSnapshotRepository interface {
	FindByItemAndPeriod(ctx context.Context, hotelID, itemID, periodID uuid.UUID) (*StockSnapshot, error)
	FindByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) ([]StockSnapshot, error)
	CountByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (int64, error)
	// Upsert writes the snapshot, replacing any existing row for the same
	// (item, period). Idempotent under at-least-once retries.
	Upsert(ctx context.Context, snapshot *StockSnapshot) error
}
