package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
)

// PeriodStatus is the derived lifecycle state of a stock period
type PeriodStatus string

const (
	PeriodStatusOpen     PeriodStatus = "OPEN"
	PeriodStatusClosed   PeriodStatus = "CLOSED"
	PeriodStatusReopened PeriodStatus = "REOPENED"
)

// StockPeriod is an accounting period for stock valuation. Periods move
// OPEN -> CLOSED -> REOPENED -> CLOSED; reopening layers on top of a close
// and never erases the close stamps.
type StockPeriod struct {
	shared.HotelAggregateRoot
	Year       int
	Month      time.Month
	StartDate  time.Time
	EndDate    time.Time
	IsClosed   bool
	ClosedAt   *time.Time
	ClosedBy   string // opaque actor reference, never parsed
	ReopenedAt *time.Time
	ReopenedBy string
}

// NewStockPeriod creates a new open stock period.
func NewStockPeriod(hotelID uuid.UUID, year int, month time.Month, startDate, endDate time.Time) (*StockPeriod, error) {
	if hotelID == uuid.Nil {
		return nil, NewValidationError("hotel ID cannot be empty")
	}
	if year < 2000 {
		return nil, NewValidationError("year %d is out of range", year)
	}
	if month < time.January || month > time.December {
		return nil, NewValidationError("month %d is out of range", month)
	}
	if !endDate.After(startDate) {
		return nil, NewValidationError("period end date must be after start date")
	}

	return &StockPeriod{
		HotelAggregateRoot: shared.NewHotelAggregateRoot(hotelID),
		Year:               year,
		Month:              month,
		StartDate:          startDate,
		EndDate:            endDate,
	}, nil
}

// Status derives the lifecycle state from the close/reopen stamps.
func (p *StockPeriod) Status() PeriodStatus {
	switch {
	case p.IsClosed:
		return PeriodStatusClosed
	case p.ClosedAt != nil:
		return PeriodStatusReopened
	default:
		return PeriodStatusOpen
	}
}

// CheckIntegrity validates the closed_at/reopened_at invariant. It runs
// before every close/reopen transition; a violation surfaces to the caller
// rather than being silently repaired.
func (p *StockPeriod) CheckIntegrity() error {
	if p.ReopenedAt != nil && p.ClosedAt == nil {
		return NewDataIntegrityError("period %d-%02d has a reopen stamp but was never closed", p.Year, int(p.Month))
	}
	return nil
}

// Close stamps the period closed. The caller is responsible for verifying
// the approved-stocktake precondition; the aggregate only guards its own
// state machine.
func (p *StockPeriod) Close(actor string) error {
	if err := p.CheckIntegrity(); err != nil {
		return err
	}
	if actor == "" {
		return NewValidationError("closing actor reference cannot be empty")
	}
	if p.IsClosed {
		return NewPeriodCloseError("period %d-%02d is already closed", p.Year, int(p.Month))
	}

	now := time.Now()
	p.IsClosed = true
	p.ClosedAt = &now
	p.ClosedBy = actor
	p.Touch()

	p.AddDomainEvent(NewPeriodClosedEvent(p))

	return nil
}

// Reopen makes a closed period editable again. The close stamps are kept:
// a reopened period still records when and by whom it was last closed.
func (p *StockPeriod) Reopen(actor string) error {
	if actor == "" {
		return NewValidationError("reopening actor reference cannot be empty")
	}
	if p.ClosedAt == nil {
		return NewDataIntegrityError("period %d-%02d cannot be reopened: it was never closed", p.Year, int(p.Month))
	}
	if !p.IsClosed {
		return NewPeriodCloseError("period %d-%02d is not closed", p.Year, int(p.Month))
	}

	now := time.Now()
	p.IsClosed = false
	p.ReopenedAt = &now
	p.ReopenedBy = actor
	p.Touch()

	p.AddDomainEvent(NewPeriodReopenedEvent(p))

	return nil
}

// Contains reports whether a date falls inside the period's range.
func (p *StockPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && date.Before(p.EndDate)
}
