package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConverter_BaseQuantity_StandardCase(t *testing.T) {
	c := NewDefaultConverter()
	spec := ConversionSpec{Class: UOMStandardCase, UnitsPerCase: d("24")}

	t.Run("converts cases plus loose units", func(t *testing.T) {
		qty, err := c.BaseQuantity(spec, d("3"), d("7"))

		require.NoError(t, err)
		assert.True(t, qty.Equal(d("79")), "got %s", qty)
	})

	t.Run("rejects partial at or above the case factor", func(t *testing.T) {
		_, err := c.BaseQuantity(spec, d("1"), d("24"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects missing case factor", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMStandardCase}, d("1"), d("0"))

		require.Error(t, err)
		assert.True(t, IsUnitConversionError(err))
	})
}

func TestConverter_BaseQuantity_Draught(t *testing.T) {
	c := NewDefaultConverter()

	t.Run("uses the fixed yield table per keg size", func(t *testing.T) {
		cases := []struct {
			size KegSize
			want string
		}{
			{Keg20L, "35.21"},
			{Keg30L, "52.82"},
			{Keg50L, "88.03"},
		}
		for _, tc := range cases {
			qty, err := c.BaseQuantity(ConversionSpec{Class: UOMDraught, KegSize: tc.size}, d("1"), d("0"))

			require.NoError(t, err)
			assert.True(t, qty.Equal(d(tc.want)), "%s keg: got %s", tc.size, qty)
		}
	})

	t.Run("converts kegs plus loose pints", func(t *testing.T) {
		qty, err := c.BaseQuantity(ConversionSpec{Class: UOMDraught, KegSize: Keg20L}, d("2"), d("5"))

		require.NoError(t, err)
		assert.True(t, qty.Equal(d("75.42")), "got %s", qty)
	})

	t.Run("rejects partial pints at or above the keg yield", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMDraught, KegSize: Keg20L}, d("1"), d("35.21"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects unrecognized keg size", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMDraught, KegSize: KegSize("25L")}, d("1"), d("0"))

		require.Error(t, err)
		assert.True(t, IsUnitConversionError(err))
	})
}

func TestConverter_BaseQuantity_Fractional(t *testing.T) {
	c := NewDefaultConverter()

	t.Run("syrup bottles count as whole plus fraction", func(t *testing.T) {
		// 700ml bottle counted as 4 full and 0.7 of a bottle is 4.7
		// bottles, not 4*700+0.7 millilitres.
		qty, err := c.BaseQuantity(ConversionSpec{Class: UOMBulkLiquidFraction}, d("4"), d("0.7"))

		require.NoError(t, err)
		assert.True(t, qty.Equal(d("4.7")), "got %s", qty)
	})

	t.Run("bag in box counts as whole plus fraction", func(t *testing.T) {
		qty, err := c.BaseQuantity(ConversionSpec{Class: UOMBagInBox}, d("2"), d("0.25"))

		require.NoError(t, err)
		assert.True(t, qty.Equal(d("2.25")), "got %s", qty)
	})

	t.Run("rejects fraction of one or more", func(t *testing.T) {
		for _, class := range []UOMClass{UOMBagInBox, UOMBulkLiquidFraction} {
			_, err := c.BaseQuantity(ConversionSpec{Class: class}, d("1"), d("1"))

			require.Error(t, err)
			assert.True(t, IsValidationError(err), "class %s", class)
		}
	})
}

func TestConverter_BaseQuantity_Bounds(t *testing.T) {
	c := NewDefaultConverter()

	t.Run("rejects negative full units", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMBagInBox}, d("-1"), d("0"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects negative partial units", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMBagInBox}, d("0"), d("-0.5"))

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects unrecognized class", func(t *testing.T) {
		_, err := c.BaseQuantity(ConversionSpec{Class: UOMClass("VOLUMETRIC")}, d("1"), d("0"))

		require.Error(t, err)
		assert.True(t, IsUnitConversionError(err))
	})
}

func TestConverter_RoundTrip(t *testing.T) {
	c := NewDefaultConverter()

	t.Run("snapshot reconstruction is exact for every class", func(t *testing.T) {
		cases := []struct {
			name          string
			spec          ConversionSpec
			full, partial string
		}{
			{"standard case", ConversionSpec{Class: UOMStandardCase, UnitsPerCase: d("12")}, "5", "11"},
			{"draught", ConversionSpec{Class: UOMDraught, KegSize: Keg30L}, "3", "12.5"},
			{"bag in box", ConversionSpec{Class: UOMBagInBox}, "7", "0.5"},
			{"syrup", ConversionSpec{Class: UOMBulkLiquidFraction}, "4", "0.7"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				closing, err := c.BaseQuantity(tc.spec, d(tc.full), d(tc.partial))
				require.NoError(t, err)

				// Carry-forward runs the identical conversion over the
				// verbatim snapshot figures.
				opening, err := c.BaseQuantity(tc.spec, d(tc.full), d(tc.partial))
				require.NoError(t, err)

				assert.True(t, opening.Equal(closing), "closing %s opening %s", closing, opening)
			})
		}
	})
}
