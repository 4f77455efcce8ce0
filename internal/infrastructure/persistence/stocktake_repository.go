package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/hotelstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStocktakeRepository implements StocktakeRepository using GORM
type GormStocktakeRepository struct {
	db *gorm.DB
}

// NewGormStocktakeRepository creates a new GormStocktakeRepository
func NewGormStocktakeRepository(db *gorm.DB) *GormStocktakeRepository {
	return &GormStocktakeRepository{db: db}
}

// FindByID finds a stocktake by its ID
func (r *GormStocktakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Stocktake, error) {
	var model models.StocktakeModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForHotel finds a stocktake by ID within a hotel
func (r *GormStocktakeRepository) FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*stock.Stocktake, error) {
	var model models.StocktakeModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the stocktake under a row-level exclusive lock.
// The lock is only held while the surrounding transaction is open.
func (r *GormStocktakeRepository) FindByIDForUpdate(ctx context.Context, hotelID, id uuid.UUID) (*stock.Stocktake, error) {
	var model models.StocktakeModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the stocktake bound to a period
func (r *GormStocktakeRepository) FindByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (*stock.Stocktake, error) {
	var model models.StocktakeModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("hotel_id = ? AND period_id = ?", hotelID, periodID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForHotel finds all stocktakes for a hotel
func (r *GormStocktakeRepository) FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]stock.Stocktake, error) {
	var stModels []models.StocktakeModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StocktakeModel{}).
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&stModels).Error; err != nil {
		return nil, err
	}
	sts := make([]stock.Stocktake, len(stModels))
	for i, model := range stModels {
		sts[i] = *model.ToDomain()
	}
	return sts, nil
}

// GenerateTakingNumber generates a new unique taking number
func (r *GormStocktakeRepository) GenerateTakingNumber(ctx context.Context, hotelID uuid.UUID) (string, error) {
	// Format: ST-YYYYMMDD-XXXX
	today := time.Now().Format("20060102")
	prefix := fmt.Sprintf("ST-%s-", today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.StocktakeModel{}).
		Select("taking_number").
		Where("hotel_id = ? AND taking_number LIKE ?", hotelID, prefix+"%").
		Order("taking_number DESC").
		Limit(1).
		Pluck("taking_number", &maxNumber).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) >= 3 {
			_, err := fmt.Sscanf(parts[len(parts)-1], "%04d", &seq)
			if err == nil {
				seq++
			}
		}
	}
	if seq == 0 {
		seq = 1
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// Save creates or updates a stocktake (without lines)
func (r *GormStocktakeRepository) Save(ctx context.Context, st *stock.Stocktake) error {
	model := models.StocktakeModelFromDomain(st)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLines saves a stocktake with its lines in a transaction
func (r *GormStocktakeRepository) SaveWithLines(ctx context.Context, st *stock.Stocktake) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.StocktakeModelFromDomain(st)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		// Delete lines that are no longer on the worksheet
		var keptLineIDs []uuid.UUID
		for _, line := range st.Lines {
			keptLineIDs = append(keptLineIDs, line.ID)
		}

		if len(keptLineIDs) > 0 {
			if err := tx.Where("stocktake_id = ? AND id NOT IN ?", st.ID, keptLineIDs).
				Delete(&models.StocktakeLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("stocktake_id = ?", st.ID).
				Delete(&models.StocktakeLineModel{}).Error; err != nil {
				return err
			}
		}

		for i := range st.Lines {
			st.Lines[i].StocktakeID = st.ID
			lineModel := models.StocktakeLineModelFromDomain(&st.Lines[i])
			if err := tx.Save(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// applyFilter applies common filter options to a query
func (r *GormStocktakeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(taking_number) LIKE ?", searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		validFields := map[string]bool{
			"taking_number": true,
			"status":        true,
			"created_at":    true,
			"updated_at":    true,
			"approved_at":   true,
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

// Ensure GormStocktakeRepository implements StocktakeRepository
var _ stock.StocktakeRepository = (*GormStocktakeRepository)(nil)
