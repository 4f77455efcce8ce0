package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockStockSnapshotRepository(t *testing.T) (*GormStockSnapshotRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStockSnapshotRepository(gormDB), mock, mockDB
}

func stockSnapshotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "hotel_id", "period_id", "item_id",
		"closing_full_units", "closing_partial_units", "unit_cost", "closing_stock_value",
	})
}

func TestGormStockSnapshotRepository_FindByItemAndPeriod(t *testing.T) {
	t.Run("finds snapshot for item and period", func(t *testing.T) {
		repo, mock, mockDB := newMockStockSnapshotRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		itemID := uuid.New()
		periodID := uuid.New()
		now := time.Now()

		rows := stockSnapshotRows().
			AddRow(uuid.New(), now, now, hotelID, periodID, itemID,
				decimal.RequireFromString("2"), decimal.RequireFromString("5"),
				decimal.RequireFromString("105.63"), decimal.RequireFromString("226.26"))

		mock.ExpectQuery(`SELECT \* FROM "stock_snapshots" WHERE hotel_id = \$1 AND item_id = \$2 AND period_id = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(hotelID, itemID, periodID, 1).
			WillReturnRows(rows)

		snapshot, err := repo.FindByItemAndPeriod(context.Background(), hotelID, itemID, periodID)

		assert.NoError(t, err)
		assert.NotNil(t, snapshot)
		assert.Equal(t, itemID, snapshot.ItemID)
		assert.True(t, snapshot.ClosingFullUnits.Equal(decimal.RequireFromString("2")))
		assert.True(t, snapshot.ClosingPartialUnits.Equal(decimal.RequireFromString("5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when period has no snapshot for item", func(t *testing.T) {
		repo, mock, mockDB := newMockStockSnapshotRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		itemID := uuid.New()
		periodID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_snapshots" WHERE hotel_id = \$1 AND item_id = \$2 AND period_id = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(hotelID, itemID, periodID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		snapshot, err := repo.FindByItemAndPeriod(context.Background(), hotelID, itemID, periodID)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockSnapshotRepository_CountByPeriod(t *testing.T) {
	t.Run("counts snapshots for period", func(t *testing.T) {
		repo, mock, mockDB := newMockStockSnapshotRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		periodID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_snapshots" WHERE hotel_id = \$1 AND period_id = \$2`).
			WithArgs(hotelID, periodID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountByPeriod(context.Background(), hotelID, periodID)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockSnapshotRepository_Upsert(t *testing.T) {
	t.Run("inserts with on-conflict clause", func(t *testing.T) {
		repo, mock, mockDB := newMockStockSnapshotRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		periodID := uuid.New()
		line := &stock.StocktakeLine{
			BaseEntity:     shared.NewBaseEntity(),
			ItemID:         uuid.New(),
			CountedFull:    decimal.RequireFromString("2"),
			CountedPartial: decimal.RequireFromString("5"),
			UnitCost:       decimal.RequireFromString("105.63"),
			CountedValue:   decimal.RequireFromString("226.26"),
		}
		snapshot := stock.SnapshotFromLine(hotelID, periodID, line)

		mock.ExpectExec(`INSERT INTO "stock_snapshots" .* ON CONFLICT \("hotel_id","period_id","item_id"\) DO UPDATE SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), snapshot)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
