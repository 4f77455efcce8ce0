package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
)

// ItemService provides application services for stock item management
type ItemService struct {
	itemRepo stock.StockItemRepository
	eventBus shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo stock.StockItemRepository, eventBus shared.EventPublisher) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		eventBus: eventBus,
	}
}

// GetByID retrieves a stock item by ID
func (s *ItemService) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByIDForHotel(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// GetBySKU retrieves a stock item by its SKU
func (s *ItemService) GetBySKU(ctx context.Context, hotelID uuid.UUID, sku string) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindBySKU(ctx, hotelID, sku)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// List retrieves a paginated list of stock items
func (s *ItemService) List(ctx context.Context, hotelID uuid.UUID, filter StockItemListFilter) ([]StockItemResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	total, err := s.itemRepo.CountForHotel(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.itemRepo.FindAllForHotel(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockItemResponses(items), total, nil
}

// Create creates a new stock item
func (s *ItemService) Create(ctx context.Context, hotelID uuid.UUID, req CreateStockItemRequest) (*StockItemResponse, error) {
	if existing, err := s.itemRepo.FindBySKU(ctx, hotelID, req.SKU); err == nil && existing != nil {
		return nil, stock.NewValidationError("SKU %s already exists", req.SKU)
	}

	item, err := stock.NewStockItem(hotelID, req.SKU, req.Name, req.Category, req.Subcategory,
		req.Class, req.UnitsPerCase, req.KegSize, req.UnitCost, req.MenuPrice)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToStockItemResponse(item)
	return &response, nil
}

// UpdateCosts updates an item's unit cost and menu price. Already-added
// stocktake lines keep their frozen cost.
func (s *ItemService) UpdateCosts(ctx context.Context, hotelID, id uuid.UUID, req UpdateStockItemCostsRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByIDForHotel(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdateCosts(req.UnitCost, req.MenuPrice); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// Deactivate removes an item from future stocktakes
func (s *ItemService) Deactivate(ctx context.Context, hotelID, id uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForHotel(ctx, hotelID, id)
	if err != nil {
		return err
	}
	item.Deactivate()
	return s.itemRepo.Save(ctx, item)
}

// Activate returns an item to future stocktakes
func (s *ItemService) Activate(ctx context.Context, hotelID, id uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForHotel(ctx, hotelID, id)
	if err != nil {
		return err
	}
	item.Activate()
	return s.itemRepo.Save(ctx, item)
}

func (s *ItemService) publishEvents(ctx context.Context, item *stock.StockItem) {
	if s.eventBus == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	item.ClearDomainEvents()
}
