package stock

import (
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockItem is a stockable product. The UOM class is fixed at creation and
// determines how physical counts and costs convert to base serving units
// for the item's entire history.
type StockItem struct {
	shared.HotelAggregateRoot
	SKU          string
	Name         string
	Category     string
	Subcategory  string
	Class        UOMClass
	UnitsPerCase decimal.Decimal // STANDARD_CASE: loose units per case
	KegSize      KegSize         // DRAUGHT: keg size for yield lookup
	UnitCost     decimal.Decimal // cost per count unit (case, keg, box or bottle)
	MenuPrice    decimal.Decimal
	Active       bool
}

// NewStockItem creates a new stock item with a fixed UOM class.
func NewStockItem(hotelID uuid.UUID, sku, name, category, subcategory string, class UOMClass, unitsPerCase decimal.Decimal, kegSize KegSize, unitCost, menuPrice decimal.Decimal) (*StockItem, error) {
	if hotelID == uuid.Nil {
		return nil, NewValidationError("hotel ID cannot be empty")
	}
	if sku == "" {
		return nil, NewValidationError("SKU cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("name cannot be empty")
	}
	if !class.IsValid() {
		return nil, NewUnitConversionError("unrecognized item class %q", class)
	}
	if class == UOMStandardCase && unitsPerCase.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("standard case item %s needs a positive units-per-case factor", sku)
	}
	if class == UOMDraught && !kegSize.IsValid() {
		return nil, NewUnitConversionError("unrecognized keg size %q for draught item %s", kegSize, sku)
	}
	if unitCost.IsNegative() {
		return nil, NewValidationError("unit cost cannot be negative")
	}
	if menuPrice.IsNegative() {
		return nil, NewValidationError("menu price cannot be negative")
	}

	item := &StockItem{
		HotelAggregateRoot: shared.NewHotelAggregateRoot(hotelID),
		SKU:                sku,
		Name:               name,
		Category:           category,
		Subcategory:        subcategory,
		Class:              class,
		UnitsPerCase:       unitsPerCase,
		KegSize:            kegSize,
		UnitCost:           unitCost,
		MenuPrice:          menuPrice,
		Active:             true,
	}

	item.AddDomainEvent(NewStockItemCreatedEvent(item))

	return item, nil
}

// ConversionSpec returns the conversion attributes the converter dispatches on.
func (i *StockItem) ConversionSpec() ConversionSpec {
	return ConversionSpec{
		Class:        i.Class,
		UnitsPerCase: i.UnitsPerCase,
		KegSize:      i.KegSize,
	}
}

// UpdateCosts updates the item's unit cost and menu price. The UOM class
// is deliberately not updatable; re-classing an item would corrupt every
// historical snapshot that references it.
func (i *StockItem) UpdateCosts(unitCost, menuPrice decimal.Decimal) error {
	if unitCost.IsNegative() {
		return NewValidationError("unit cost cannot be negative")
	}
	if menuPrice.IsNegative() {
		return NewValidationError("menu price cannot be negative")
	}
	i.UnitCost = unitCost
	i.MenuPrice = menuPrice
	i.Touch()
	return nil
}

// Rename updates the item's display name.
func (i *StockItem) Rename(name string) error {
	if name == "" {
		return NewValidationError("name cannot be empty")
	}
	i.Name = name
	i.Touch()
	return nil
}

// Deactivate removes the item from active stocktakes. Items are never
// deleted while referenced by historical lines or snapshots.
func (i *StockItem) Deactivate() {
	i.Active = false
	i.Touch()
}

// Activate returns the item to active stocktakes.
func (i *StockItem) Activate() {
	i.Active = true
	i.Touch()
}
