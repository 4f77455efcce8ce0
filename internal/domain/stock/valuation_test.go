package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuator_CostPerBaseUnit(t *testing.T) {
	v := NewValuator(NewDefaultConverter())

	t.Run("standard case divides by the case factor", func(t *testing.T) {
		cost, err := v.CostPerBaseUnit(ConversionSpec{Class: UOMStandardCase, UnitsPerCase: d("24")}, d("36.00"))

		require.NoError(t, err)
		assert.True(t, cost.Equal(d("1.5")), "got %s", cost)
	})

	t.Run("draught divides by the keg yield", func(t *testing.T) {
		cost, err := v.CostPerBaseUnit(ConversionSpec{Class: UOMDraught, KegSize: Keg50L}, d("176.06"))

		require.NoError(t, err)
		assert.True(t, cost.Equal(d("2")), "got %s", cost)
	})

	t.Run("fractional classes pass the cost through", func(t *testing.T) {
		cost, err := v.CostPerBaseUnit(ConversionSpec{Class: UOMBulkLiquidFraction}, d("12.50"))

		require.NoError(t, err)
		assert.True(t, cost.Equal(d("12.5")), "got %s", cost)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		_, err := v.CostPerBaseUnit(ConversionSpec{Class: UOMBagInBox}, d("-1"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects standard case without a case factor", func(t *testing.T) {
		_, err := v.CostPerBaseUnit(ConversionSpec{Class: UOMStandardCase}, d("10"))

		require.Error(t, err)
		assert.True(t, IsUnitConversionError(err))
	})
}

func TestValuator_ComputeLine(t *testing.T) {
	v := NewValuator(NewDefaultConverter())

	t.Run("draught variance in pints", func(t *testing.T) {
		// Opening 10 pints, one 20L keg delivered, nothing wasted.
		// Counted 2 kegs and 5 loose pints.
		spec := ConversionSpec{Class: UOMDraught, KegSize: Keg20L}
		totals, err := v.ComputeLine(spec, LineInput{
			OpeningQty:     d("10"),
			Purchases:      d("35.21"),
			Waste:          d("0"),
			CountedFull:    d("2"),
			CountedPartial: d("5"),
			UnitCost:       d("105.63"),
		})

		require.NoError(t, err)
		assert.True(t, totals.CountedQty.Equal(d("75.42")), "counted %s", totals.CountedQty)
		assert.True(t, totals.ExpectedQty.Equal(d("45.21")), "expected %s", totals.ExpectedQty)
		assert.True(t, totals.VarianceQty.Equal(d("30.21")), "variance %s", totals.VarianceQty)
		// 105.63 / 35.21 = 3.00 per pint.
		assert.True(t, totals.ValuationCost.Equal(d("3")), "cost %s", totals.ValuationCost)
		assert.True(t, totals.VarianceValue.Equal(d("90.63")), "variance value %s", totals.VarianceValue)
	})

	t.Run("negative variance when counted below expected", func(t *testing.T) {
		spec := ConversionSpec{Class: UOMStandardCase, UnitsPerCase: d("12")}
		totals, err := v.ComputeLine(spec, LineInput{
			OpeningQty:     d("30"),
			Purchases:      d("24"),
			Waste:          d("2"),
			CountedFull:    d("4"),
			CountedPartial: d("0"),
			UnitCost:       d("18.00"),
		})

		require.NoError(t, err)
		assert.True(t, totals.ExpectedQty.Equal(d("52")), "expected %s", totals.ExpectedQty)
		assert.True(t, totals.VarianceQty.Equal(d("-4")), "variance %s", totals.VarianceQty)
		assert.True(t, totals.VarianceValue.Equal(d("-6")), "variance value %s", totals.VarianceValue)
	})

	t.Run("values are kept at internal precision", func(t *testing.T) {
		spec := ConversionSpec{Class: UOMBulkLiquidFraction}
		totals, err := v.ComputeLine(spec, LineInput{
			OpeningQty:     d("0"),
			Purchases:      d("0"),
			Waste:          d("0"),
			CountedFull:    d("3"),
			CountedPartial: d("0.333"),
			UnitCost:       d("9.99"),
		})

		require.NoError(t, err)
		// 3.333 * 9.99 = 33.29667 rounds to 33.2967 internally,
		// and to 33.30 at the display boundary.
		assert.True(t, totals.CountedValue.Equal(d("33.2967")), "counted value %s", totals.CountedValue)
		assert.True(t, DisplayValue(totals.CountedValue).Equal(d("33.30")))
	})

	t.Run("propagates conversion errors", func(t *testing.T) {
		spec := ConversionSpec{Class: UOMDraught, KegSize: Keg20L}
		_, err := v.ComputeLine(spec, LineInput{
			CountedFull:    d("1"),
			CountedPartial: d("40"),
			UnitCost:       d("100"),
		})

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestValuator_ClosingValue(t *testing.T) {
	v := NewValuator(NewDefaultConverter())

	t.Run("values a snapshot at cost per base unit", func(t *testing.T) {
		spec := ConversionSpec{Class: UOMDraught, KegSize: Keg30L}
		value, err := v.ClosingValue(spec, d("2"), d("10"), d("158.46"))

		require.NoError(t, err)
		// (2*52.82 + 10) * (158.46/52.82) = 115.64 * 3.00
		assert.True(t, value.Equal(d("346.92")), "got %s", value)
	})

	t.Run("rejects out of range snapshot figures", func(t *testing.T) {
		spec := ConversionSpec{Class: UOMBagInBox}
		_, err := v.ClosingValue(spec, d("1"), d("1.5"), d("20"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestDisplayValue(t *testing.T) {
	assert.True(t, DisplayValue(decimal.RequireFromString("12.3449")).Equal(d("12.34")))
	assert.True(t, DisplayValue(decimal.RequireFromString("12.345")).Equal(d("12.35")))
}
