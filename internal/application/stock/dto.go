package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// ===================== Request DTOs =====================

// CreateStockItemRequest represents a request to create a stock item
type CreateStockItemRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Class        stock.UOMClass  `json:"class" binding:"required,uomclass"`
	UnitsPerCase decimal.Decimal `json:"units_per_case"`
	KegSize      stock.KegSize   `json:"keg_size"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
	MenuPrice    decimal.Decimal `json:"menu_price"`
}

// UpdateStockItemCostsRequest represents a request to update costs
type UpdateStockItemCostsRequest struct {
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
	MenuPrice decimal.Decimal `json:"menu_price"`
}

// StockItemListFilter represents filter options for stock item list
type StockItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreatePeriodRequest represents a request to open a new stock period
type CreatePeriodRequest struct {
	Year      int       `json:"year" binding:"required,min=2000"`
	Month     int       `json:"month" binding:"required,min=1,max=12"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	// Partial marks the period's stocktake as a deliberate subset count.
	Partial bool `json:"partial"`
}

// RecordCountRequest represents a request to record the physical count for an item
type RecordCountRequest struct {
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	CountedFull    decimal.Decimal `json:"counted_full"`
	CountedPartial decimal.Decimal `json:"counted_partial"`
}

// RecordCountsRequest represents a bulk request to record counts
type RecordCountsRequest struct {
	Counts []RecordCountRequest `json:"counts" binding:"required,min=1"`
}

// RecordMovementRequest represents a purchase or waste movement in physical units
type RecordMovementRequest struct {
	ItemID  uuid.UUID       `json:"item_id" binding:"required"`
	Full    decimal.Decimal `json:"full"`
	Partial decimal.Decimal `json:"partial"`
}

// ApproveStocktakeRequest represents a request to approve a stocktake
type ApproveStocktakeRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required"`
}

// ClosePeriodRequest represents a request to close a period
type ClosePeriodRequest struct {
	ClosedBy string `json:"closed_by" binding:"required"`
}

// ReopenPeriodRequest represents a request to reopen a closed period
type ReopenPeriodRequest struct {
	ReopenedBy string `json:"reopened_by" binding:"required"`
}

// ===================== Response DTOs =====================

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	HotelID      uuid.UUID       `json:"hotel_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Subcategory  string          `json:"subcategory,omitempty"`
	Class        string          `json:"class"`
	UnitsPerCase decimal.Decimal `json:"units_per_case"`
	KegSize      string          `json:"keg_size,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	MenuPrice    decimal.Decimal `json:"menu_price"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StocktakeLineResponse represents a stocktake line in API responses
type StocktakeLineResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ItemID             uuid.UUID       `json:"item_id"`
	ItemSKU            string          `json:"item_sku"`
	ItemName           string          `json:"item_name"`
	Class              string          `json:"class"`
	OpeningQty         decimal.Decimal `json:"opening_qty"`
	OpeningUnconfirmed bool            `json:"opening_unconfirmed,omitempty"`
	Purchases          decimal.Decimal `json:"purchases"`
	Waste              decimal.Decimal `json:"waste"`
	CountedFull        decimal.Decimal `json:"counted_full"`
	CountedPartial     decimal.Decimal `json:"counted_partial"`
	Counted            bool            `json:"counted"`
	CountedQty         decimal.Decimal `json:"counted_qty"`
	ExpectedQty        decimal.Decimal `json:"expected_qty"`
	VarianceQty        decimal.Decimal `json:"variance_qty"`
	CountedValue       decimal.Decimal `json:"counted_value"`
	ExpectedValue      decimal.Decimal `json:"expected_value"`
	VarianceValue      decimal.Decimal `json:"variance_value"`
}

// StocktakeResponse represents a stocktake in API responses
type StocktakeResponse struct {
	ID            uuid.UUID               `json:"id"`
	HotelID       uuid.UUID               `json:"hotel_id"`
	PeriodID      uuid.UUID               `json:"period_id"`
	TakingNumber  string                  `json:"taking_number"`
	Status        string                  `json:"status"`
	Partial       bool                    `json:"partial"`
	ApprovedAt    *time.Time              `json:"approved_at,omitempty"`
	ApprovedBy    string                  `json:"approved_by,omitempty"`
	TotalLines    int                     `json:"total_lines"`
	CountedLines  int                     `json:"counted_lines"`
	VarianceLines int                     `json:"variance_lines"`
	TotalVariance decimal.Decimal         `json:"total_variance"`
	Lines         []StocktakeLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// PeriodResponse represents a stock period in API responses
type PeriodResponse struct {
	ID         uuid.UUID  `json:"id"`
	HotelID    uuid.UUID  `json:"hotel_id"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Status     string     `json:"status"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ClosedBy   string     `json:"closed_by,omitempty"`
	ReopenedAt *time.Time `json:"reopened_at,omitempty"`
	ReopenedBy string     `json:"reopened_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ApprovalSummaryResponse reports what an approval froze
type ApprovalSummaryResponse struct {
	StocktakeID   uuid.UUID       `json:"stocktake_id"`
	PeriodID      uuid.UUID       `json:"period_id"`
	Status        string          `json:"status"`
	SnapshotCount int             `json:"snapshot_count"`
	ClosingValue  decimal.Decimal `json:"closing_value"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy    string          `json:"approved_by,omitempty"`
}

// SnapshotResponse represents a closing snapshot in API responses
type SnapshotResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PeriodID            uuid.UUID       `json:"period_id"`
	ItemID              uuid.UUID       `json:"item_id"`
	ClosingFullUnits    decimal.Decimal `json:"closing_full_units"`
	ClosingPartialUnits decimal.Decimal `json:"closing_partial_units"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	ClosingStockValue   decimal.Decimal `json:"closing_stock_value"`
}

// VarianceReportLine is one row of the variance report, display scale
type VarianceReportLine struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemSKU       string          `json:"item_sku"`
	ItemName      string          `json:"item_name"`
	CountedQty    decimal.Decimal `json:"counted_qty"`
	ExpectedQty   decimal.Decimal `json:"expected_qty"`
	VarianceQty   decimal.Decimal `json:"variance_qty"`
	VarianceValue decimal.Decimal `json:"variance_value"`
}

// VarianceReportResponse aggregates the variance lines of a stocktake
type VarianceReportResponse struct {
	StocktakeID   uuid.UUID            `json:"stocktake_id"`
	TakingNumber  string               `json:"taking_number"`
	VarianceLines int                  `json:"variance_lines"`
	TotalVariance decimal.Decimal      `json:"total_variance"`
	Lines         []VarianceReportLine `json:"lines"`
}

// ===================== Mapping Functions =====================

// ToStockItemResponse converts a domain StockItem to a response DTO
func ToStockItemResponse(item *stock.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		HotelID:      item.HotelID,
		SKU:          item.SKU,
		Name:         item.Name,
		Category:     item.Category,
		Subcategory:  item.Subcategory,
		Class:        item.Class.String(),
		UnitsPerCase: item.UnitsPerCase,
		KegSize:      string(item.KegSize),
		UnitCost:     item.UnitCost,
		MenuPrice:    item.MenuPrice,
		Active:       item.Active,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToStockItemResponses converts a slice of items
func ToStockItemResponses(items []stock.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = ToStockItemResponse(&items[i])
	}
	return responses
}

// ToStocktakeLineResponse converts a domain line to a response DTO.
// Derived values round to display scale at this boundary.
func ToStocktakeLineResponse(line *stock.StocktakeLine) StocktakeLineResponse {
	return StocktakeLineResponse{
		ID:                 line.ID,
		ItemID:             line.ItemID,
		ItemSKU:            line.ItemSKU,
		ItemName:           line.ItemName,
		Class:              line.Class.String(),
		OpeningQty:         line.OpeningQty,
		OpeningUnconfirmed: line.OpeningUnconfirmed,
		Purchases:          line.Purchases,
		Waste:              line.Waste,
		CountedFull:        line.CountedFull,
		CountedPartial:     line.CountedPartial,
		Counted:            line.Counted,
		CountedQty:         line.CountedQty,
		ExpectedQty:        line.ExpectedQty,
		VarianceQty:        line.VarianceQty,
		CountedValue:       stock.DisplayValue(line.CountedValue),
		ExpectedValue:      stock.DisplayValue(line.ExpectedValue),
		VarianceValue:      stock.DisplayValue(line.VarianceValue),
	}
}

// ToStocktakeResponse converts a domain Stocktake to a response DTO
func ToStocktakeResponse(st *stock.Stocktake) StocktakeResponse {
	lines := make([]StocktakeLineResponse, len(st.Lines))
	for i := range st.Lines {
		lines[i] = ToStocktakeLineResponse(&st.Lines[i])
	}
	return StocktakeResponse{
		ID:            st.ID,
		HotelID:       st.HotelID,
		PeriodID:      st.PeriodID,
		TakingNumber:  st.TakingNumber,
		Status:        st.Status.String(),
		Partial:       st.Partial,
		ApprovedAt:    st.ApprovedAt,
		ApprovedBy:    st.ApprovedBy,
		TotalLines:    st.TotalLines,
		CountedLines:  st.CountedLines,
		VarianceLines: st.VarianceLines,
		TotalVariance: stock.DisplayValue(st.TotalVariance),
		Lines:         lines,
		CreatedAt:     st.CreatedAt,
		UpdatedAt:     st.UpdatedAt,
	}
}

// ToPeriodResponse converts a domain StockPeriod to a response DTO
func ToPeriodResponse(p *stock.StockPeriod) PeriodResponse {
	return PeriodResponse{
		ID:         p.ID,
		HotelID:    p.HotelID,
		Year:       p.Year,
		Month:      int(p.Month),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Status:     string(p.Status()),
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
		ReopenedAt: p.ReopenedAt,
		ReopenedBy: p.ReopenedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToPeriodResponses converts a slice of periods
func ToPeriodResponses(periods []stock.StockPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}

// ToSnapshotResponse converts a domain StockSnapshot to a response DTO
func ToSnapshotResponse(s *stock.StockSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                  s.ID,
		PeriodID:            s.PeriodID,
		ItemID:              s.ItemID,
		ClosingFullUnits:    s.ClosingFullUnits,
		ClosingPartialUnits: s.ClosingPartialUnits,
		UnitCost:            s.UnitCost,
		ClosingStockValue:   stock.DisplayValue(s.ClosingStockValue),
	}
}

// ToSnapshotResponses converts a slice of snapshots
func ToSnapshotResponses(snapshots []stock.StockSnapshot) []SnapshotResponse {
	responses := make([]SnapshotResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = ToSnapshotResponse(&snapshots[i])
	}
	return responses
}

// ToVarianceReportResponse builds the variance report for a stocktake
func ToVarianceReportResponse(st *stock.Stocktake) VarianceReportResponse {
	withVariance := st.LinesWithVariance()
	lines := make([]VarianceReportLine, len(withVariance))
	for i := range withVariance {
		line := &withVariance[i]
		lines[i] = VarianceReportLine{
			ItemID:        line.ItemID,
			ItemSKU:       line.ItemSKU,
			ItemName:      line.ItemName,
			CountedQty:    line.CountedQty,
			ExpectedQty:   line.ExpectedQty,
			VarianceQty:   line.VarianceQty,
			VarianceValue: stock.DisplayValue(line.VarianceValue),
		}
	}
	return VarianceReportResponse{
		StocktakeID:   st.ID,
		TakingNumber:  st.TakingNumber,
		VarianceLines: len(lines),
		TotalVariance: stock.DisplayValue(st.TotalVariance),
		Lines:         lines,
	}
}
