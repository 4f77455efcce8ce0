package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StocktakeStatus represents the status of a stocktake document
type StocktakeStatus string

const (
	StocktakeStatusDraft    StocktakeStatus = "DRAFT"
	StocktakeStatusApproved StocktakeStatus = "APPROVED"
)

// IsValid checks if the status is a valid StocktakeStatus
func (s StocktakeStatus) IsValid() bool {
	return s == StocktakeStatusDraft || s == StocktakeStatusApproved
}

// String returns the string representation of StocktakeStatus
func (s StocktakeStatus) String() string {
	return string(s)
}

// StocktakeLine is the counting worksheet entry for one item. Opening,
// purchases and waste are held in the item's base serving unit; the counted
// figures are raw physical counts that convert through the item's fixed
// conversion spec and never around it.
type StocktakeLine struct {
	shared.BaseEntity
	StocktakeID uuid.UUID
	ItemID      uuid.UUID
	ItemSKU     string
	ItemName    string

	// Conversion attributes frozen from the item when the line was added.
	Class        UOMClass
	UnitsPerCase decimal.Decimal
	KegSize      KegSize

	OpeningQty decimal.Decimal
	// OpeningUnconfirmed flags an opening of zero that was carried forward
	// without a predecessor snapshot; indistinguishable from genuinely zero
	// stock until an operator confirms it.
	OpeningUnconfirmed bool
	Purchases          decimal.Decimal
	Waste              decimal.Decimal

	CountedFull    decimal.Decimal
	CountedPartial decimal.Decimal
	Counted        bool

	UnitCost decimal.Decimal // per count unit, frozen from the item

	// Derived figures, recomputed on every edit.
	CountedQty    decimal.Decimal
	ExpectedQty   decimal.Decimal
	VarianceQty   decimal.Decimal
	ValuationCost decimal.Decimal
	CountedValue  decimal.Decimal
	ExpectedValue decimal.Decimal
	VarianceValue decimal.Decimal
}

// conversionSpec returns the line's frozen conversion attributes.
func (l *StocktakeLine) conversionSpec() ConversionSpec {
	return ConversionSpec{
		Class:        l.Class,
		UnitsPerCase: l.UnitsPerCase,
		KegSize:      l.KegSize,
	}
}

// recompute re-derives the line's totals through the valuator.
func (l *StocktakeLine) recompute(v *Valuator) error {
	totals, err := v.ComputeLine(l.conversionSpec(), LineInput{
		OpeningQty:     l.OpeningQty,
		Purchases:      l.Purchases,
		Waste:          l.Waste,
		CountedFull:    l.CountedFull,
		CountedPartial: l.CountedPartial,
		UnitCost:       l.UnitCost,
	})
	if err != nil {
		return err
	}
	l.CountedQty = totals.CountedQty
	l.ExpectedQty = totals.ExpectedQty
	l.VarianceQty = totals.VarianceQty
	l.ValuationCost = totals.ValuationCost
	l.CountedValue = totals.CountedValue
	l.ExpectedValue = totals.ExpectedValue
	l.VarianceValue = totals.VarianceValue
	l.UpdatedAt = time.Now()
	return nil
}

// Totals returns the line's derived figures.
func (l *StocktakeLine) Totals() LineTotals {
	return LineTotals{
		CountedQty:    l.CountedQty,
		ExpectedQty:   l.ExpectedQty,
		VarianceQty:   l.VarianceQty,
		ValuationCost: l.ValuationCost,
		CountedValue:  l.CountedValue,
		ExpectedValue: l.ExpectedValue,
		VarianceValue: l.VarianceValue,
	}
}

// HasVariance returns true if the counted quantity differs from expected
func (l *StocktakeLine) HasVariance() bool {
	return l.Counted && !l.VarianceQty.IsZero()
}

// Stocktake is the mutable counting worksheet for a period. It references
// its period by explicit foreign key; exactly one stocktake exists per
// period. Lines stay editable until the single DRAFT -> APPROVED
// transition freezes them.
type Stocktake struct {
	shared.HotelAggregateRoot
	PeriodID       uuid.UUID
	TakingNumber   string
	Status         StocktakeStatus
	Partial        bool // deliberately counts a subset of active items
	ApprovedAt     *time.Time
	ApprovedBy     string // opaque actor reference
	TotalLines     int
	CountedLines   int
	VarianceLines  int
	TotalVariance  decimal.Decimal // sum of variance values, internal scale
	Lines          []StocktakeLine
}

// NewStocktake creates a DRAFT stocktake bound to a period.
func NewStocktake(hotelID, periodID uuid.UUID, takingNumber string, partial bool) (*Stocktake, error) {
	if hotelID == uuid.Nil {
		return nil, NewValidationError("hotel ID cannot be empty")
	}
	if periodID == uuid.Nil {
		return nil, NewValidationError("period ID cannot be empty")
	}
	if takingNumber == "" {
		return nil, NewValidationError("taking number cannot be empty")
	}

	st := &Stocktake{
		HotelAggregateRoot: shared.NewHotelAggregateRoot(hotelID),
		PeriodID:           periodID,
		TakingNumber:       takingNumber,
		Status:             StocktakeStatusDraft,
		Partial:            partial,
		TotalVariance:      decimal.Zero,
		Lines:              make([]StocktakeLine, 0),
	}

	st.AddDomainEvent(NewStocktakeCreatedEvent(st))

	return st, nil
}

// guardEditable rejects any mutation once the stocktake is approved.
func (st *Stocktake) guardEditable() error {
	if st.Status != StocktakeStatusDraft {
		return NewValidationError("stocktake %s is %s; lines are frozen", st.TakingNumber, st.Status)
	}
	return nil
}

// AddLine adds a counting line for an item with its opening quantity in
// base serving units. The item's conversion attributes and unit cost are
// frozen onto the line.
func (st *Stocktake) AddLine(item *StockItem, openingQty decimal.Decimal, openingUnconfirmed bool) error {
	if err := st.guardEditable(); err != nil {
		return err
	}
	if item == nil {
		return NewValidationError("item cannot be nil")
	}
	if openingQty.IsNegative() {
		return NewValidationError("opening quantity cannot be negative for item %s", item.SKU)
	}
	for _, line := range st.Lines {
		if line.ItemID == item.ID {
			return NewValidationError("item %s already has a line on this stocktake", item.SKU)
		}
	}

	line := StocktakeLine{
		BaseEntity:         shared.NewBaseEntity(),
		StocktakeID:        st.ID,
		ItemID:             item.ID,
		ItemSKU:            item.SKU,
		ItemName:           item.Name,
		Class:              item.Class,
		UnitsPerCase:       item.UnitsPerCase,
		KegSize:            item.KegSize,
		OpeningQty:         openingQty,
		OpeningUnconfirmed: openingUnconfirmed,
		Purchases:          decimal.Zero,
		Waste:              decimal.Zero,
		CountedFull:        decimal.Zero,
		CountedPartial:     decimal.Zero,
		UnitCost:           item.UnitCost,
	}
	st.Lines = append(st.Lines, line)
	st.TotalLines++
	st.Touch()

	return nil
}

// findLine returns a pointer into Lines for the given item.
func (st *Stocktake) findLine(itemID uuid.UUID) (*StocktakeLine, error) {
	for i := range st.Lines {
		if st.Lines[i].ItemID == itemID {
			return &st.Lines[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// RecordCount records the physical count for an item and recomputes the
// line's totals. Last write wins pre-approval.
func (st *Stocktake) RecordCount(v *Valuator, itemID uuid.UUID, full, partial decimal.Decimal) error {
	if err := st.guardEditable(); err != nil {
		return err
	}
	line, err := st.findLine(itemID)
	if err != nil {
		return err
	}

	wasCounted := line.Counted
	prevFull, prevPartial := line.CountedFull, line.CountedPartial

	line.CountedFull = full
	line.CountedPartial = partial
	line.Counted = true
	if err := line.recompute(v); err != nil {
		line.CountedFull, line.CountedPartial = prevFull, prevPartial
		line.Counted = wasCounted
		return err
	}

	if !wasCounted {
		st.CountedLines++
	}
	st.recalculateTotals()
	st.Touch()

	st.AddDomainEvent(NewStocktakeLineChangedEvent(st, line))

	return nil
}

// AddPurchase records a purchase movement for an item. The physical
// (full, partial) figures convert through the line's frozen spec into base
// serving units before touching the expected quantity.
func (st *Stocktake) AddPurchase(v *Valuator, itemID uuid.UUID, full, partial decimal.Decimal) error {
	return st.addMovement(v, itemID, full, partial, false)
}

// AddWaste records a waste movement for an item.
func (st *Stocktake) AddWaste(v *Valuator, itemID uuid.UUID, full, partial decimal.Decimal) error {
	return st.addMovement(v, itemID, full, partial, true)
}

func (st *Stocktake) addMovement(v *Valuator, itemID uuid.UUID, full, partial decimal.Decimal, waste bool) error {
	if err := st.guardEditable(); err != nil {
		return err
	}
	line, err := st.findLine(itemID)
	if err != nil {
		return err
	}

	qty, err := v.Converter().BaseQuantity(line.conversionSpec(), full, partial)
	if err != nil {
		return err
	}
	if waste {
		line.Waste = line.Waste.Add(qty)
	} else {
		line.Purchases = line.Purchases.Add(qty)
	}
	if err := line.recompute(v); err != nil {
		if waste {
			line.Waste = line.Waste.Sub(qty)
		} else {
			line.Purchases = line.Purchases.Sub(qty)
		}
		return err
	}

	st.recalculateTotals()
	st.Touch()

	st.AddDomainEvent(NewStocktakeLineChangedEvent(st, line))

	return nil
}

// recalculateTotals re-derives the stocktake-level aggregates.
func (st *Stocktake) recalculateTotals() {
	st.VarianceLines = 0
	st.TotalVariance = decimal.Zero
	for i := range st.Lines {
		if st.Lines[i].HasVariance() {
			st.VarianceLines++
			st.TotalVariance = st.TotalVariance.Add(st.Lines[i].VarianceValue)
		}
	}
}

// Approve freezes the stocktake. Every line is revalidated and recomputed;
// any failure leaves the stocktake DRAFT and untouched. A full stocktake
// requires every line counted; a partial one requires at least one.
func (st *Stocktake) Approve(v *Valuator, actor string) error {
	if st.Status != StocktakeStatusDraft {
		return NewValidationError("stocktake %s is already %s", st.TakingNumber, st.Status)
	}
	if actor == "" {
		return NewValidationError("approving actor reference cannot be empty")
	}
	if len(st.Lines) == 0 {
		return NewValidationError("stocktake %s has no lines", st.TakingNumber)
	}
	if st.Partial {
		if st.CountedLines == 0 {
			return NewValidationError("partial stocktake %s has no counted lines", st.TakingNumber)
		}
	} else if st.CountedLines != st.TotalLines {
		return NewValidationError("stocktake %s is incomplete: %d of %d lines counted", st.TakingNumber, st.CountedLines, st.TotalLines)
	}

	for i := range st.Lines {
		if err := st.Lines[i].recompute(v); err != nil {
			return err
		}
	}
	st.recalculateTotals()

	now := time.Now()
	st.Status = StocktakeStatusApproved
	st.ApprovedAt = &now
	st.ApprovedBy = actor
	st.Touch()

	st.AddDomainEvent(NewStocktakeApprovedEvent(st))

	return nil
}

// Reopen returns an approved stocktake to DRAFT. Only invoked when the
// owning period is administratively reopened.
func (st *Stocktake) Reopen() error {
	if st.Status != StocktakeStatusApproved {
		return NewValidationError("stocktake %s is not approved", st.TakingNumber)
	}
	st.Status = StocktakeStatusDraft
	st.ApprovedAt = nil
	st.ApprovedBy = ""
	st.Touch()
	return nil
}

// CountedLineSlice returns the lines with a recorded physical count.
func (st *Stocktake) CountedLineSlice() []StocktakeLine {
	result := make([]StocktakeLine, 0, len(st.Lines))
	for _, line := range st.Lines {
		if line.Counted {
			result = append(result, line)
		}
	}
	return result
}

// LinesWithVariance returns the counted lines whose counted quantity
// differs from expected.
func (st *Stocktake) LinesWithVariance() []StocktakeLine {
	result := make([]StocktakeLine, 0)
	for _, line := range st.Lines {
		if line.HasVariance() {
			result = append(result, line)
		}
	}
	return result
}
