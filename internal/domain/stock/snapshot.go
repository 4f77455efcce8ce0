package stock

import (
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockSnapshot is the immutable closing record of one item for one period,
// unique per (item, period). The closing full/partial figures are copied
// verbatim from the approved counted values in the same units; the next
// period reconstructs its opening quantity from them through the same
// conversion that produced them.
type StockSnapshot struct {
	shared.BaseEntity
	HotelID             uuid.UUID
	PeriodID            uuid.UUID
	ItemID              uuid.UUID
	ClosingFullUnits    decimal.Decimal
	ClosingPartialUnits decimal.Decimal
	UnitCost            decimal.Decimal // per count unit, as frozen on the line
	ClosingStockValue   decimal.Decimal
}

// SnapshotFromLine freezes an approved stocktake line into a snapshot.
// The counted figures are copied without re-conversion.
func SnapshotFromLine(hotelID, periodID uuid.UUID, line *StocktakeLine) *StockSnapshot {
	return &StockSnapshot{
		BaseEntity:          shared.NewBaseEntity(),
		HotelID:             hotelID,
		PeriodID:            periodID,
		ItemID:              line.ItemID,
		ClosingFullUnits:    line.CountedFull,
		ClosingPartialUnits: line.CountedPartial,
		UnitCost:            line.UnitCost,
		ClosingStockValue:   line.CountedValue,
	}
}

// OpeningQuantity reconstructs the base serving quantity this snapshot
// closed at, using the given conversion spec. This is the carry-forward
// path: the same conversion direction that produced the snapshot, never an
// unrelated per-serving multiplier.
func (s *StockSnapshot) OpeningQuantity(c *Converter, spec ConversionSpec) (decimal.Decimal, error) {
	return c.BaseQuantity(spec, s.ClosingFullUnits, s.ClosingPartialUnits)
}
