package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockStocktakeRepository(t *testing.T) (*GormStocktakeRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStocktakeRepository(gormDB), mock, mockDB
}

func stocktakeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "hotel_id", "version", "period_id", "taking_number", "status", "partial",
		"approved_at", "approved_by", "total_lines", "counted_lines", "variance_lines", "total_variance",
	})
}

func TestGormStocktakeRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the stocktake row and preloads lines", func(t *testing.T) {
		repo, mock, mockDB := newMockStocktakeRepository(t)
		defer mockDB.Close()

		stID := uuid.New()
		hotelID := uuid.New()
		periodID := uuid.New()

		rows := stocktakeRows().
			AddRow(stID, hotelID, 1, periodID, "ST-20260331-0001", stock.StocktakeStatusDraft, false,
				nil, "", 2, 1, 1, decimal.Zero)

		lineRows := sqlmock.NewRows([]string{"id", "stocktake_id", "item_id", "item_sku", "item_name", "class"}).
			AddRow(uuid.New(), stID, uuid.New(), "BEER-001", "House Lager", stock.UOMDraught)

		mock.ExpectQuery(`SELECT \* FROM "stocktakes" WHERE hotel_id = \$1 AND id = \$2 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(hotelID, stID, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "stocktake_lines" WHERE "stocktake_lines"\."stocktake_id" = \$1`).
			WithArgs(stID).
			WillReturnRows(lineRows)

		st, err := repo.FindByIDForUpdate(context.Background(), hotelID, stID)

		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, stock.StocktakeStatusDraft, st.Status)
		assert.Len(t, st.Lines, 1)
		assert.Equal(t, "BEER-001", st.Lines[0].ItemSKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStocktakeRepository_GenerateTakingNumber(t *testing.T) {
	t.Run("starts at 0001 when no stocktakes exist today", func(t *testing.T) {
		repo, mock, mockDB := newMockStocktakeRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		today := time.Now().Format("20060102")

		mock.ExpectQuery(`SELECT "taking_number" FROM "stocktakes" WHERE hotel_id = \$1 AND taking_number LIKE \$2 ORDER BY taking_number DESC LIMIT .*`).
			WithArgs(hotelID, fmt.Sprintf("ST-%s-%%", today), 1).
			WillReturnRows(sqlmock.NewRows([]string{"taking_number"}))

		number, err := repo.GenerateTakingNumber(context.Background(), hotelID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ST-%s-0001", today), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest sequence for today", func(t *testing.T) {
		repo, mock, mockDB := newMockStocktakeRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		today := time.Now().Format("20060102")

		mock.ExpectQuery(`SELECT "taking_number" FROM "stocktakes" WHERE hotel_id = \$1 AND taking_number LIKE \$2 ORDER BY taking_number DESC LIMIT .*`).
			WithArgs(hotelID, fmt.Sprintf("ST-%s-%%", today), 1).
			WillReturnRows(sqlmock.NewRows([]string{"taking_number"}).
				AddRow(fmt.Sprintf("ST-%s-0007", today)))

		number, err := repo.GenerateTakingNumber(context.Background(), hotelID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ST-%s-0008", today), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStocktakeRepository_SaveWithLines(t *testing.T) {
	t.Run("saves header and lines in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockStocktakeRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		periodID := uuid.New()
		st, err := stock.NewStocktake(hotelID, periodID, "ST-20260331-0001", false)
		assert.NoError(t, err)

		item, err := stock.NewStockItem(hotelID, "WINE-002", "House Red", "Beverage", "Wine",
			stock.UOMStandardCase, decimal.RequireFromString("12"), "",
			decimal.RequireFromString("72.00"), decimal.Zero)
		assert.NoError(t, err)
		assert.NoError(t, st.AddLine(item, decimal.Zero, true))

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "stocktakes" .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "stocktake_lines" WHERE stocktake_id = \$1 AND id NOT IN \(\$2\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "stocktake_lines" .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveWithLines(context.Background(), st)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a line write fails", func(t *testing.T) {
		repo, mock, mockDB := newMockStocktakeRepository(t)
		defer mockDB.Close()

		hotelID := uuid.New()
		st, err := stock.NewStocktake(hotelID, uuid.New(), "ST-20260331-0002", false)
		assert.NoError(t, err)

		item, err := stock.NewStockItem(hotelID, "GIN-003", "London Dry", "Beverage", "Spirits",
			stock.UOMBulkLiquidFraction, decimal.Zero, "",
			decimal.RequireFromString("24.00"), decimal.Zero)
		assert.NoError(t, err)
		assert.NoError(t, st.AddLine(item, decimal.Zero, true))

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "stocktakes" .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "stocktake_lines" WHERE stocktake_id = \$1 AND id NOT IN \(\$2\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "stocktake_lines" .*`).
			WillReturnError(gorm.ErrInvalidData)
		mock.ExpectRollback()

		err = repo.SaveWithLines(context.Background(), st)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
