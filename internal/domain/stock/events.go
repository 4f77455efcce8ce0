package stock

import (
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the stock domain
const (
	EventTypeStockItemCreated     = "stock.item.created"
	EventTypeStocktakeCreated     = "stock.stocktake.created"
	EventTypeStocktakeLineChanged = "stock.stocktake.line_changed"
	EventTypeStocktakeApproved    = "stock.stocktake.approved"
	EventTypePeriodClosed         = "stock.period.closed"
	EventTypePeriodReopened       = "stock.period.reopened"
)

// StockItemCreatedEvent is published when a stock item is created
type StockItemCreatedEvent struct {
	shared.BaseDomainEvent
	SKU   string   `json:"sku"`
	Class UOMClass `json:"class"`
}

// NewStockItemCreatedEvent creates a new StockItemCreatedEvent
func NewStockItemCreatedEvent(item *StockItem) *StockItemCreatedEvent {
	return &StockItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockItemCreated, "StockItem", item.ID, item.HotelID),
		SKU:             item.SKU,
		Class:           item.Class,
	}
}

// StocktakeCreatedEvent is published when a stocktake worksheet is created
type StocktakeCreatedEvent struct {
	shared.BaseDomainEvent
	PeriodID     uuid.UUID `json:"period_id"`
	TakingNumber string    `json:"taking_number"`
	Partial      bool      `json:"partial"`
}

// NewStocktakeCreatedEvent creates a new StocktakeCreatedEvent
func NewStocktakeCreatedEvent(st *Stocktake) *StocktakeCreatedEvent {
	return &StocktakeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStocktakeCreated, "Stocktake", st.ID, st.HotelID),
		PeriodID:        st.PeriodID,
		TakingNumber:    st.TakingNumber,
		Partial:         st.Partial,
	}
}

// StocktakeLineChangedEvent is the fire-and-forget notification published
// after every line mutation. Delivery is not required for correctness.
type StocktakeLineChangedEvent struct {
	shared.BaseDomainEvent
	PeriodID    uuid.UUID       `json:"period_id"`
	ItemID      uuid.UUID       `json:"item_id"`
	ItemSKU     string          `json:"item_sku"`
	CountedQty  decimal.Decimal `json:"counted_qty"`
	VarianceQty decimal.Decimal `json:"variance_qty"`
}

// NewStocktakeLineChangedEvent creates a new StocktakeLineChangedEvent
func NewStocktakeLineChangedEvent(st *Stocktake, line *StocktakeLine) *StocktakeLineChangedEvent {
	return &StocktakeLineChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStocktakeLineChanged, "Stocktake", st.ID, st.HotelID),
		PeriodID:        st.PeriodID,
		ItemID:          line.ItemID,
		ItemSKU:         line.ItemSKU,
		CountedQty:      line.CountedQty,
		VarianceQty:     line.VarianceQty,
	}
}

// StocktakeApprovedEvent is published when a stocktake is approved
type StocktakeApprovedEvent struct {
	shared.BaseDomainEvent
	PeriodID      uuid.UUID       `json:"period_id"`
	TakingNumber  string          `json:"taking_number"`
	TotalLines    int             `json:"total_lines"`
	TotalVariance decimal.Decimal `json:"total_variance"`
	ApprovedBy    string          `json:"approved_by"`
}

// NewStocktakeApprovedEvent creates a new StocktakeApprovedEvent
func NewStocktakeApprovedEvent(st *Stocktake) *StocktakeApprovedEvent {
	return &StocktakeApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStocktakeApproved, "Stocktake", st.ID, st.HotelID),
		PeriodID:        st.PeriodID,
		TakingNumber:    st.TakingNumber,
		TotalLines:      st.TotalLines,
		TotalVariance:   st.TotalVariance,
		ApprovedBy:      st.ApprovedBy,
	}
}

// PeriodClosedEvent is published when a period is closed
type PeriodClosedEvent struct {
	shared.BaseDomainEvent
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	ClosedBy string `json:"closed_by"`
}

// NewPeriodClosedEvent creates a new PeriodClosedEvent
func NewPeriodClosedEvent(p *StockPeriod) *PeriodClosedEvent {
	return &PeriodClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodClosed, "StockPeriod", p.ID, p.HotelID),
		Year:            p.Year,
		Month:           int(p.Month),
		ClosedBy:        p.ClosedBy,
	}
}

// PeriodReopenedEvent is published when a closed period is reopened
type PeriodReopenedEvent struct {
	shared.BaseDomainEvent
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	ReopenedBy string `json:"reopened_by"`
}

// NewPeriodReopenedEvent creates a new PeriodReopenedEvent
func NewPeriodReopenedEvent(p *StockPeriod) *PeriodReopenedEvent {
	return &PeriodReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodReopened, "StockPeriod", p.ID, p.HotelID),
		Year:            p.Year,
		Month:           int(p.Month),
		ReopenedBy:      p.ReopenedBy,
	}
}
