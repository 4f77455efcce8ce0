package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/hotelstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockPeriodRepository implements StockPeriodRepository using GORM
type GormStockPeriodRepository struct {
	db *gorm.DB
}

// NewGormStockPeriodRepository creates a new GormStockPeriodRepository
func NewGormStockPeriodRepository(db *gorm.DB) *GormStockPeriodRepository {
	return &GormStockPeriodRepository{db: db}
}

// FindByID finds a stock period by its ID
func (r *GormStockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockPeriod, error) {
	var model models.StockPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForHotel finds a stock period by ID within a hotel
func (r *GormStockPeriodRepository) FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*stock.StockPeriod, error) {
	var model models.StockPeriodModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMonth finds a hotel's period for a calendar month
func (r *GormStockPeriodRepository) FindByMonth(ctx context.Context, hotelID uuid.UUID, year int, month time.Month) (*stock.StockPeriod, error) {
	var model models.StockPeriodModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND year = ? AND month = ?", hotelID, year, int(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPredecessor finds the period ending latest on or before the given
// start date. Returns shared.ErrNotFound for the hotel's first period.
func (r *GormStockPeriodRepository) FindPredecessor(ctx context.Context, hotelID uuid.UUID, startDate time.Time) (*stock.StockPeriod, error) {
	var model models.StockPeriodModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND end_date <= ?", hotelID, startDate).
		Order("end_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForHotel finds all stock periods for a hotel
func (r *GormStockPeriodRepository) FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]stock.StockPeriod, error) {
	var periodModels []models.StockPeriodModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockPeriodModel{}).
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&periodModels).Error; err != nil {
		return nil, err
	}
	periods := make([]stock.StockPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, nil
}

// Save creates or updates a stock period
func (r *GormStockPeriodRepository) Save(ctx context.Context, period *stock.StockPeriod) error {
	model := models.StockPeriodModelFromDomain(period)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyFilter applies common filter options to a query
func (r *GormStockPeriodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "start_date"
	if filter.OrderBy != "" {
		validFields := map[string]bool{
			"year":       true,
			"month":      true,
			"start_date": true,
			"end_date":   true,
			"created_at": true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}

	orderDir := "DESC"
	if filter.OrderDir == "asc" || filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

// Ensure GormStockPeriodRepository implements StockPeriodRepository
var _ stock.StockPeriodRepository = (*GormStockPeriodRepository)(nil)
