package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// StockItemModel is the persistence model for the StockItem aggregate root.
type StockItemModel struct {
	HotelAggregateModel
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_stock_items_sku_hotel,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Category     string          `gorm:"type:varchar(100)"`
	Subcategory  string          `gorm:"type:varchar(100)"`
	Class        stock.UOMClass  `gorm:"type:varchar(30);not null"`
	UnitsPerCase decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	KegSize      stock.KegSize   `gorm:"type:varchar(10)"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MenuPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem entity.
func (m *StockItemModel) ToDomain() *stock.StockItem {
	item := &stock.StockItem{
		SKU:          m.SKU,
		Name:         m.Name,
		Category:     m.Category,
		Subcategory:  m.Subcategory,
		Class:        m.Class,
		UnitsPerCase: m.UnitsPerCase,
		KegSize:      m.KegSize,
		UnitCost:     m.UnitCost,
		MenuPrice:    m.MenuPrice,
		Active:       m.Active,
	}
	m.PopulateHotelAggregateRoot(&item.HotelAggregateRoot)
	return item
}

// StockItemModelFromDomain creates a persistence model from a domain StockItem.
func StockItemModelFromDomain(item *stock.StockItem) *StockItemModel {
	m := &StockItemModel{
		SKU:          item.SKU,
		Name:         item.Name,
		Category:     item.Category,
		Subcategory:  item.Subcategory,
		Class:        item.Class,
		UnitsPerCase: item.UnitsPerCase,
		KegSize:      item.KegSize,
		UnitCost:     item.UnitCost,
		MenuPrice:    item.MenuPrice,
		Active:       item.Active,
	}
	m.FromDomainHotelAggregateRoot(item.HotelAggregateRoot)
	return m
}

// StockPeriodModel is the persistence model for the StockPeriod aggregate root.
type StockPeriodModel struct {
	HotelAggregateModel
	Year       int        `gorm:"not null;uniqueIndex:idx_stock_periods_month_hotel,priority:2"`
	Month      int        `gorm:"not null;uniqueIndex:idx_stock_periods_month_hotel,priority:3"`
	StartDate  time.Time  `gorm:"not null"`
	EndDate    time.Time  `gorm:"not null;index"`
	IsClosed   bool       `gorm:"not null;default:false"`
	ClosedAt   *time.Time `gorm:""`
	ClosedBy   string     `gorm:"type:varchar(100)"`
	ReopenedAt *time.Time `gorm:""`
	ReopenedBy string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (StockPeriodModel) TableName() string {
	return "stock_periods"
}

// ToDomain converts the persistence model to a domain StockPeriod entity.
func (m *StockPeriodModel) ToDomain() *stock.StockPeriod {
	p := &stock.StockPeriod{
		Year:       m.Year,
		Month:      time.Month(m.Month),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsClosed:   m.IsClosed,
		ClosedAt:   m.ClosedAt,
		ClosedBy:   m.ClosedBy,
		ReopenedAt: m.ReopenedAt,
		ReopenedBy: m.ReopenedBy,
	}
	m.PopulateHotelAggregateRoot(&p.HotelAggregateRoot)
	return p
}

// StockPeriodModelFromDomain creates a persistence model from a domain StockPeriod.
func StockPeriodModelFromDomain(p *stock.StockPeriod) *StockPeriodModel {
	m := &StockPeriodModel{
		Year:       p.Year,
		Month:      int(p.Month),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		IsClosed:   p.IsClosed,
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
		ReopenedAt: p.ReopenedAt,
		ReopenedBy: p.ReopenedBy,
	}
	m.FromDomainHotelAggregateRoot(p.HotelAggregateRoot)
	return m
}

// StocktakeModel is the persistence model for the Stocktake aggregate root.
type StocktakeModel struct {
	HotelAggregateModel
	PeriodID      uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_stocktakes_period_hotel,priority:2"`
	TakingNumber  string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_stocktakes_number_hotel,priority:2"`
	Status        stock.StocktakeStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Partial       bool                  `gorm:"not null;default:false"`
	ApprovedAt    *time.Time            `gorm:""`
	ApprovedBy    string                `gorm:"type:varchar(100)"`
	TotalLines    int                   `gorm:"not null;default:0"`
	CountedLines  int                   `gorm:"not null;default:0"`
	VarianceLines int                   `gorm:"not null;default:0"`
	TotalVariance decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Lines         []StocktakeLineModel  `gorm:"foreignKey:StocktakeID;references:ID"`
}

// TableName returns the table name for GORM
func (StocktakeModel) TableName() string {
	return "stocktakes"
}

// ToDomain converts the persistence model to a domain Stocktake entity.
func (m *StocktakeModel) ToDomain() *stock.Stocktake {
	st := &stock.Stocktake{
		PeriodID:      m.PeriodID,
		TakingNumber:  m.TakingNumber,
		Status:        m.Status,
		Partial:       m.Partial,
		ApprovedAt:    m.ApprovedAt,
		ApprovedBy:    m.ApprovedBy,
		TotalLines:    m.TotalLines,
		CountedLines:  m.CountedLines,
		VarianceLines: m.VarianceLines,
		TotalVariance: m.TotalVariance,
		Lines:         make([]stock.StocktakeLine, len(m.Lines)),
	}
	m.PopulateHotelAggregateRoot(&st.HotelAggregateRoot)
	for i := range m.Lines {
		st.Lines[i] = *m.Lines[i].ToDomain()
	}
	return st
}

// StocktakeModelFromDomain creates a persistence model from a domain
// Stocktake. Lines are intentionally not mapped here; SaveWithLines
// persists them separately so partial updates stay explicit.
func StocktakeModelFromDomain(st *stock.Stocktake) *StocktakeModel {
	m := &StocktakeModel{
		PeriodID:      st.PeriodID,
		TakingNumber:  st.TakingNumber,
		Status:        st.Status,
		Partial:       st.Partial,
		ApprovedAt:    st.ApprovedAt,
		ApprovedBy:    st.ApprovedBy,
		TotalLines:    st.TotalLines,
		CountedLines:  st.CountedLines,
		VarianceLines: st.VarianceLines,
		TotalVariance: st.TotalVariance,
	}
	m.FromDomainHotelAggregateRoot(st.HotelAggregateRoot)
	return m
}

// StocktakeLineModel is the persistence model for the StocktakeLine entity.
type StocktakeLineModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	StocktakeID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID             uuid.UUID       `gorm:"type:uuid;not null"`
	ItemSKU            string          `gorm:"type:varchar(50);not null"`
	ItemName           string          `gorm:"type:varchar(200);not null"`
	Class              stock.UOMClass  `gorm:"type:varchar(30);not null"`
	UnitsPerCase       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	KegSize            stock.KegSize   `gorm:"type:varchar(10)"`
	OpeningQty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningUnconfirmed bool            `gorm:"not null;default:false"`
	Purchases          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Waste              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CountedFull        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CountedPartial     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Counted            bool            `gorm:"not null;default:false"`
	UnitCost           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CountedQty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedQty        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VarianceQty        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ValuationCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CountedValue       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedValue      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VarianceValue      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StocktakeLineModel) TableName() string {
	return "stocktake_lines"
}

// ToDomain converts the persistence model to a domain StocktakeLine entity.
func (m *StocktakeLineModel) ToDomain() *stock.StocktakeLine {
	return &stock.StocktakeLine{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		StocktakeID:        m.StocktakeID,
		ItemID:             m.ItemID,
		ItemSKU:            m.ItemSKU,
		ItemName:           m.ItemName,
		Class:              m.Class,
		UnitsPerCase:       m.UnitsPerCase,
		KegSize:            m.KegSize,
		OpeningQty:         m.OpeningQty,
		OpeningUnconfirmed: m.OpeningUnconfirmed,
		Purchases:          m.Purchases,
		Waste:              m.Waste,
		CountedFull:        m.CountedFull,
		CountedPartial:     m.CountedPartial,
		Counted:            m.Counted,
		UnitCost:           m.UnitCost,
		CountedQty:         m.CountedQty,
		ExpectedQty:        m.ExpectedQty,
		VarianceQty:        m.VarianceQty,
		ValuationCost:      m.ValuationCost,
		CountedValue:       m.CountedValue,
		ExpectedValue:      m.ExpectedValue,
		VarianceValue:      m.VarianceValue,
	}
}

// StocktakeLineModelFromDomain creates a persistence model from a domain StocktakeLine.
func StocktakeLineModelFromDomain(l *stock.StocktakeLine) *StocktakeLineModel {
	return &StocktakeLineModel{
		ID:                 l.ID,
		StocktakeID:        l.StocktakeID,
		ItemID:             l.ItemID,
		ItemSKU:            l.ItemSKU,
		ItemName:           l.ItemName,
		Class:              l.Class,
		UnitsPerCase:       l.UnitsPerCase,
		KegSize:            l.KegSize,
		OpeningQty:         l.OpeningQty,
		OpeningUnconfirmed: l.OpeningUnconfirmed,
		Purchases:          l.Purchases,
		Waste:              l.Waste,
		CountedFull:        l.CountedFull,
		CountedPartial:     l.CountedPartial,
		Counted:            l.Counted,
		UnitCost:           l.UnitCost,
		CountedQty:         l.CountedQty,
		ExpectedQty:        l.ExpectedQty,
		VarianceQty:        l.VarianceQty,
		ValuationCost:      l.ValuationCost,
		CountedValue:       l.CountedValue,
		ExpectedValue:      l.ExpectedValue,
		VarianceValue:      l.VarianceValue,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// StockSnapshotModel is the persistence model for the StockSnapshot entity.
// The (hotel, period, item) unique index backs the upsert that keeps
// approval retries from doubling closing rows.
type StockSnapshotModel struct {
	BaseModel
	HotelID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_snapshots_scope,priority:1"`
	PeriodID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_snapshots_scope,priority:2"`
	ItemID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_snapshots_scope,priority:3"`
	ClosingFullUnits    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingPartialUnits decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingStockValue   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockSnapshotModel) TableName() string {
	return "stock_snapshots"
}

// ToDomain converts the persistence model to a domain StockSnapshot entity.
func (m *StockSnapshotModel) ToDomain() *stock.StockSnapshot {
	return &stock.StockSnapshot{
		BaseEntity:          m.BaseModel.ToDomain(),
		HotelID:             m.HotelID,
		PeriodID:            m.PeriodID,
		ItemID:              m.ItemID,
		ClosingFullUnits:    m.ClosingFullUnits,
		ClosingPartialUnits: m.ClosingPartialUnits,
		UnitCost:            m.UnitCost,
		ClosingStockValue:   m.ClosingStockValue,
	}
}

// StockSnapshotModelFromDomain creates a persistence model from a domain StockSnapshot.
func StockSnapshotModelFromDomain(s *stock.StockSnapshot) *StockSnapshotModel {
	m := &StockSnapshotModel{
		HotelID:             s.HotelID,
		PeriodID:            s.PeriodID,
		ItemID:              s.ItemID,
		ClosingFullUnits:    s.ClosingFullUnits,
		ClosingPartialUnits: s.ClosingPartialUnits,
		UnitCost:            s.UnitCost,
		ClosingStockValue:   s.ClosingStockValue,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
