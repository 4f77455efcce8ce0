package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockStockPeriodRepository(t *testing.T) (*GormStockPeriodRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStockPeriodRepository(gormDB), mock, mockDB
}

func stockPeriodRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "hotel_id", "version", "year", "month", "start_date", "end_date",
		"is_closed", "closed_at", "closed_by", "reopened_at", "reopened_by",
	})
}

func TestGormStockPeriodRepository_FindByMonth(t *testing.T) {
	t.Run("finds period for calendar month", func(t *testing.T) {
		repo, mock, mockDB := newMockStockPeriodRepository(t)
		defer mockDB.Close()

		periodID := uuid.New()
		hotelID := uuid.New()
		start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

		rows := stockPeriodRows().
			AddRow(periodID, hotelID, 1, 2026, 3, start, end, false, nil, "", nil, "")

		mock.ExpectQuery(`SELECT \* FROM "stock_periods" WHERE hotel_id = \$1 AND year = \$2 AND month = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(hotelID, 2026, 3, 1).
			WillReturnRows(rows)

		period, err := repo.FindByMonth(context.Background(), hotelID, 2026, time.March)

		assert.NoError(t, err)
		assert.NotNil(t, period)
		assert.Equal(t, 2026, period.Year)
		assert.Equal(t, time.March, period.Month)
		assert.False(t, period.IsClosed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when month has no period", func(t *testing.T) {
		repo, mock, mockDB := newMockStockPeriodRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_periods" WHERE hotel_id = \$1 AND year = \$2 AND month = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(hotelID, 2026, 4, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		period, err := repo.FindByMonth(context.Background(), hotelID, 2026, time.April)

		assert.Error(t, err)
		assert.Nil(t, period)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockPeriodRepository_FindPredecessor(t *testing.T) {
	t.Run("finds latest period ending before start date", func(t *testing.T) {
		repo, mock, mockDB := newMockStockPeriodRepository(t)
		defer mockDB.Close()

		periodID := uuid.New()
		hotelID := uuid.New()
		aprilStart := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
		marchStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		marchEnd := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
		closedAt := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)

		rows := stockPeriodRows().
			AddRow(periodID, hotelID, 2, 2026, 3, marchStart, marchEnd, true, closedAt, "manager", nil, "")

		mock.ExpectQuery(`SELECT \* FROM "stock_periods" WHERE hotel_id = \$1 AND end_date <= \$2 ORDER BY end_date DESC,.* LIMIT .*`).
			WithArgs(hotelID, aprilStart, 1).
			WillReturnRows(rows)

		period, err := repo.FindPredecessor(context.Background(), hotelID, aprilStart)

		assert.NoError(t, err)
		assert.NotNil(t, period)
		assert.Equal(t, time.March, period.Month)
		assert.True(t, period.IsClosed)
		assert.Equal(t, "manager", period.ClosedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for first period", func(t *testing.T) {
		repo, mock, mockDB := newMockStockPeriodRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "stock_periods" WHERE hotel_id = \$1 AND end_date <= \$2 ORDER BY end_date DESC,.* LIMIT .*`).
			WithArgs(hotelID, start, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		period, err := repo.FindPredecessor(context.Background(), hotelID, start)

		assert.Error(t, err)
		assert.Nil(t, period)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
