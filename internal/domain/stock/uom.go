package stock

import (
	"github.com/shopspring/decimal"
)

// UOMClass identifies how an item's physical counts convert to base serving
// units. The class is fixed when the item is created and never re-derived,
// so a bottle of syrup can never silently turn into raw millilitres.
type UOMClass string

const (
	// UOMStandardCase counts full cases plus loose units. Base quantity is
	// full*UnitsPerCase + partial.
	UOMStandardCase UOMClass = "STANDARD_CASE"
	// UOMDraught counts kegs plus loose pints. Base quantity is
	// full*yield(keg size) + partial pints.
	UOMDraught UOMClass = "DRAUGHT"
	// UOMBagInBox counts boxes plus a fractional box in [0,1).
	UOMBagInBox UOMClass = "BAG_IN_BOX"
	// UOMBulkLiquidFraction counts bottles plus a fractional bottle in [0,1).
	// Used for syrups and similar bulk liquids.
	UOMBulkLiquidFraction UOMClass = "BULK_LIQUID_FRACTION"
)

// IsValid checks if the class is a recognized UOMClass
func (c UOMClass) IsValid() bool {
	switch c {
	case UOMStandardCase, UOMDraught, UOMBagInBox, UOMBulkLiquidFraction:
		return true
	}
	return false
}

// String returns the string representation of the class
func (c UOMClass) String() string {
	return string(c)
}

// KegSize identifies a draught keg size
type KegSize string

const (
	Keg20L KegSize = "20L"
	Keg30L KegSize = "30L"
	Keg50L KegSize = "50L"
)

// IsValid checks if the keg size is recognized
func (k KegSize) IsValid() bool {
	switch k {
	case Keg20L, Keg30L, Keg50L:
		return true
	}
	return false
}

// DraughtYields maps keg sizes to servable pints per keg.
type DraughtYields map[KegSize]decimal.Decimal

// DefaultDraughtYields returns the standard pints-per-keg table.
func DefaultDraughtYields() DraughtYields {
	return DraughtYields{
		Keg20L: decimal.NewFromFloat(35.21),
		Keg30L: decimal.NewFromFloat(52.82),
		Keg50L: decimal.NewFromFloat(88.03),
	}
}

// ConversionSpec carries the item attributes the converter dispatches on.
// It is derived from a StockItem at creation time and copied onto stocktake
// lines so historical documents convert exactly as they were counted.
type ConversionSpec struct {
	Class        UOMClass
	UnitsPerCase decimal.Decimal // STANDARD_CASE only
	KegSize      KegSize         // DRAUGHT only
}

// Converter converts (full, partial) physical counts into base serving
// quantities. It is pure and deterministic; the draught yield table is
// injected configuration rather than scattered literals.
type Converter struct {
	yields DraughtYields
}

// NewConverter creates a Converter with the given draught yield table.
func NewConverter(yields DraughtYields) *Converter {
	return &Converter{yields: yields}
}

// NewDefaultConverter creates a Converter with the standard yield table.
func NewDefaultConverter() *Converter {
	return NewConverter(DefaultDraughtYields())
}

// Yield returns the pints-per-keg yield for a keg size.
func (c *Converter) Yield(size KegSize) (decimal.Decimal, error) {
	yield, ok := c.yields[size]
	if !ok {
		return decimal.Zero, NewUnitConversionError("unrecognized keg size %q", size)
	}
	return yield, nil
}

// BaseQuantity converts full and partial counts to a base serving quantity.
// Partial bounds depend on the class: [0,1) for fractional classes,
// [0, UnitsPerCase) for standard cases and [0, yield) for draught.
func (c *Converter) BaseQuantity(spec ConversionSpec, full, partial decimal.Decimal) (decimal.Decimal, error) {
	if full.IsNegative() {
		return decimal.Zero, NewValidationError("full units cannot be negative, got %s", full)
	}
	if partial.IsNegative() {
		return decimal.Zero, NewValidationError("partial units cannot be negative, got %s", partial)
	}

	switch spec.Class {
	case UOMStandardCase:
		if spec.UnitsPerCase.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, NewUnitConversionError("standard case item has no units-per-case factor")
		}
		if partial.GreaterThanOrEqual(spec.UnitsPerCase) {
			return decimal.Zero, NewValidationError("partial units must be below %s loose units per case, got %s", spec.UnitsPerCase, partial)
		}
		return full.Mul(spec.UnitsPerCase).Add(partial), nil

	case UOMDraught:
		yield, err := c.Yield(spec.KegSize)
		if err != nil {
			return decimal.Zero, err
		}
		if partial.GreaterThanOrEqual(yield) {
			return decimal.Zero, NewValidationError("partial pints must be below the %s keg yield of %s, got %s", spec.KegSize, yield, partial)
		}
		return full.Mul(yield).Add(partial), nil

	case UOMBagInBox, UOMBulkLiquidFraction:
		if partial.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return decimal.Zero, NewValidationError("partial must be a fraction in [0,1), got %s", partial)
		}
		return full.Add(partial), nil
	}

	return decimal.Zero, NewUnitConversionError("unrecognized item class %q", spec.Class)
}
