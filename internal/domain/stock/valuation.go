package stock

import (
	"github.com/shopspring/decimal"
)

// quantityScale is the internal fractional precision for quantities and
// monetary values. Display values round to 2 digits at the aggregation
// boundary only, so rounding error does not compound across lines.
const (
	quantityScale = 4
	displayScale  = 2
)

// LineTotals holds the derived quantities and values for a stocktake line.
// All quantities are in the item's base serving unit.
type LineTotals struct {
	CountedQty    decimal.Decimal
	ExpectedQty   decimal.Decimal
	VarianceQty   decimal.Decimal
	ValuationCost decimal.Decimal // cost per base serving unit
	CountedValue  decimal.Decimal
	ExpectedValue decimal.Decimal
	VarianceValue decimal.Decimal
}

// LineInput carries the raw figures a line valuation starts from.
// Opening, purchases and waste are already in base serving units.
type LineInput struct {
	OpeningQty     decimal.Decimal
	Purchases      decimal.Decimal
	Waste          decimal.Decimal
	CountedFull    decimal.Decimal
	CountedPartial decimal.Decimal
	UnitCost       decimal.Decimal // cost per count unit (case, keg, box, bottle)
}

// Valuator turns physical counts into monetary values. Cost resolution
// uses the same class dispatch as unit conversion, so draught stock is
// always valued in pints at cost-per-pint, never kegs at cost-per-keg.
type Valuator struct {
	converter *Converter
}

// NewValuator creates a Valuator over the given converter.
func NewValuator(converter *Converter) *Valuator {
	return &Valuator{converter: converter}
}

// Converter exposes the underlying unit converter.
func (v *Valuator) Converter() *Converter {
	return v.converter
}

// CostPerBaseUnit resolves the cost of one base serving unit for an item.
// Unit costs are stored per count unit: per case for standard cases, per
// keg for draught, per box/bottle for the fractional classes.
func (v *Valuator) CostPerBaseUnit(spec ConversionSpec, unitCost decimal.Decimal) (decimal.Decimal, error) {
	if unitCost.IsNegative() {
		return decimal.Zero, NewValidationError("unit cost cannot be negative, got %s", unitCost)
	}

	switch spec.Class {
	case UOMStandardCase:
		if spec.UnitsPerCase.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, NewUnitConversionError("standard case item has no units-per-case factor")
		}
		return unitCost.Div(spec.UnitsPerCase).Round(quantityScale), nil

	case UOMDraught:
		yield, err := v.converter.Yield(spec.KegSize)
		if err != nil {
			return decimal.Zero, err
		}
		return unitCost.Div(yield).Round(quantityScale), nil

	case UOMBagInBox, UOMBulkLiquidFraction:
		// Count unit and base unit coincide for fractional classes.
		return unitCost.Round(quantityScale), nil
	}

	return decimal.Zero, NewUnitConversionError("unrecognized item class %q", spec.Class)
}

// ComputeLine derives counted, expected and variance quantities and their
// monetary counterparts for one line.
//
//	expected = opening + purchases - waste
//	variance = counted - expected
func (v *Valuator) ComputeLine(spec ConversionSpec, in LineInput) (*LineTotals, error) {
	countedQty, err := v.converter.BaseQuantity(spec, in.CountedFull, in.CountedPartial)
	if err != nil {
		return nil, err
	}
	cost, err := v.CostPerBaseUnit(spec, in.UnitCost)
	if err != nil {
		return nil, err
	}

	expectedQty := in.OpeningQty.Add(in.Purchases).Sub(in.Waste)
	varianceQty := countedQty.Sub(expectedQty)

	return &LineTotals{
		CountedQty:    countedQty.Round(quantityScale),
		ExpectedQty:   expectedQty.Round(quantityScale),
		VarianceQty:   varianceQty.Round(quantityScale),
		ValuationCost: cost,
		CountedValue:  countedQty.Mul(cost).Round(quantityScale),
		ExpectedValue: expectedQty.Mul(cost).Round(quantityScale),
		VarianceValue: varianceQty.Mul(cost).Round(quantityScale),
	}, nil
}

// ClosingValue values a closing snapshot quantity at its resolved cost.
func (v *Valuator) ClosingValue(spec ConversionSpec, full, partial, unitCost decimal.Decimal) (decimal.Decimal, error) {
	qty, err := v.converter.BaseQuantity(spec, full, partial)
	if err != nil {
		return decimal.Zero, err
	}
	cost, err := v.CostPerBaseUnit(spec, unitCost)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Mul(cost).Round(quantityScale), nil
}

// DisplayValue rounds an internal 4dp value to the 2dp display scale.
func DisplayValue(d decimal.Decimal) decimal.Decimal {
	return d.Round(displayScale)
}
