package stock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// memItemRepo is an in-memory StockItemRepository
type memItemRepo struct {
	items map[uuid.UUID]*stock.StockItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]*stock.StockItem)}
}

func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.StockItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindByIDForHotel(_ context.Context, hotelID, id uuid.UUID) (*stock.StockItem, error) {
	if item, ok := r.items[id]; ok && item.HotelID == hotelID {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindBySKU(_ context.Context, hotelID uuid.UUID, sku string) (*stock.StockItem, error) {
	for _, item := range r.items {
		if item.HotelID == hotelID && item.SKU == sku {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindActiveForHotel(_ context.Context, hotelID uuid.UUID) ([]stock.StockItem, error) {
	result := make([]stock.StockItem, 0)
	for _, item := range r.items {
		if item.HotelID == hotelID && item.Active {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *memItemRepo) FindAllForHotel(_ context.Context, hotelID uuid.UUID, _ shared.Filter) ([]stock.StockItem, error) {
	result := make([]stock.StockItem, 0)
	for _, item := range r.items {
		if item.HotelID == hotelID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *memItemRepo) CountForHotel(_ context.Context, hotelID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.HotelID == hotelID {
			count++
		}
	}
	return count, nil
}

func (r *memItemRepo) Save(_ context.Context, item *stock.StockItem) error {
	r.items[item.ID] = item
	return nil
}

// memPeriodRepo is an in-memory StockPeriodRepository
type memPeriodRepo struct {
	periods map[uuid.UUID]*stock.StockPeriod
}

func newMemPeriodRepo() *memPeriodRepo {
	return &memPeriodRepo{periods: make(map[uuid.UUID]*stock.StockPeriod)}
}

func (r *memPeriodRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.StockPeriod, error) {
	if p, ok := r.periods[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPeriodRepo) FindByIDForHotel(_ context.Context, hotelID, id uuid.UUID) (*stock.StockPeriod, error) {
	if p, ok := r.periods[id]; ok && p.HotelID == hotelID {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPeriodRepo) FindByMonth(_ context.Context, hotelID uuid.UUID, year int, month time.Month) (*stock.StockPeriod, error) {
	for _, p := range r.periods {
		if p.HotelID == hotelID && p.Year == year && p.Month == month {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPeriodRepo) FindPredecessor(_ context.Context, hotelID uuid.UUID, startDate time.Time) (*stock.StockPeriod, error) {
	var best *stock.StockPeriod
	for _, p := range r.periods {
		if p.HotelID != hotelID || p.EndDate.After(startDate) {
			continue
		}
		if best == nil || p.EndDate.After(best.EndDate) {
			best = p
		}
	}
	if best == nil {
		return nil, shared.ErrNotFound
	}
	return best, nil
}

func (r *memPeriodRepo) FindAllForHotel(_ context.Context, hotelID uuid.UUID, _ shared.Filter) ([]stock.StockPeriod, error) {
	result := make([]stock.StockPeriod, 0)
	for _, p := range r.periods {
		if p.HotelID == hotelID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memPeriodRepo) Save(_ context.Context, period *stock.StockPeriod) error {
	r.periods[period.ID] = period
	return nil
}

// memStocktakeRepo is an in-memory StocktakeRepository
type memStocktakeRepo struct {
	stocktakes map[uuid.UUID]*stock.Stocktake
	seq        int
}

func newMemStocktakeRepo() *memStocktakeRepo {
	return &memStocktakeRepo{stocktakes: make(map[uuid.UUID]*stock.Stocktake)}
}

func (r *memStocktakeRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.Stocktake, error) {
	if st, ok := r.stocktakes[id]; ok {
		return st, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memStocktakeRepo) FindByIDForHotel(_ context.Context, hotelID, id uuid.UUID) (*stock.Stocktake, error) {
	if st, ok := r.stocktakes[id]; ok && st.HotelID == hotelID {
		return st, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memStocktakeRepo) FindByIDForUpdate(ctx context.Context, hotelID, id uuid.UUID) (*stock.Stocktake, error) {
	return r.FindByIDForHotel(ctx, hotelID, id)
}

func (r *memStocktakeRepo) FindByPeriod(_ context.Context, hotelID, periodID uuid.UUID) (*stock.Stocktake, error) {
	for _, st := range r.stocktakes {
		if st.HotelID == hotelID && st.PeriodID == periodID {
			return st, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStocktakeRepo) FindAllForHotel(_ context.Context, hotelID uuid.UUID, _ shared.Filter) ([]stock.Stocktake, error) {
	result := make([]stock.Stocktake, 0)
	for _, st := range r.stocktakes {
		if st.HotelID == hotelID {
			result = append(result, *st)
		}
	}
	return result, nil
}

func (r *memStocktakeRepo) GenerateTakingNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("ST-%04d", r.seq), nil
}

func (r *memStocktakeRepo) Save(_ context.Context, st *stock.Stocktake) error {
	r.stocktakes[st.ID] = st
	return nil
}

func (r *memStocktakeRepo) SaveWithLines(ctx context.Context, st *stock.Stocktake) error {
	return r.Save(ctx, st)
}

// memSnapshotRepo is an in-memory StockSnapshotRepository
type memSnapshotRepo struct {
	snapshots map[string]*stock.StockSnapshot
}

func newMemSnapshotRepo() *memSnapshotRepo {
	return &memSnapshotRepo{snapshots: make(map[string]*stock.StockSnapshot)}
}

func snapshotKey(hotelID, itemID, periodID uuid.UUID) string {
	return hotelID.String() + "/" + periodID.String() + "/" + itemID.String()
}

func (r *memSnapshotRepo) FindByItemAndPeriod(_ context.Context, hotelID, itemID, periodID uuid.UUID) (*stock.StockSnapshot, error) {
	if s, ok := r.snapshots[snapshotKey(hotelID, itemID, periodID)]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memSnapshotRepo) FindByPeriod(_ context.Context, hotelID, periodID uuid.UUID) ([]stock.StockSnapshot, error) {
	result := make([]stock.StockSnapshot, 0)
	for _, s := range r.snapshots {
		if s.HotelID == hotelID && s.PeriodID == periodID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *memSnapshotRepo) CountByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (int64, error) {
	found, err := r.FindByPeriod(ctx, hotelID, periodID)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}

func (r *memSnapshotRepo) Upsert(_ context.Context, snapshot *stock.StockSnapshot) error {
	r.snapshots[snapshotKey(snapshot.HotelID, snapshot.ItemID, snapshot.PeriodID)] = snapshot
	return nil
}

// fakeGuard is an in-process ApprovalGuard with a pre-settable holder
type fakeGuard struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{held: make(map[uuid.UUID]bool)}
}

func (g *fakeGuard) Acquire(_ context.Context, stocktakeID uuid.UUID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[stocktakeID] {
		return false, nil
	}
	g.held[stocktakeID] = true
	return true, nil
}

func (g *fakeGuard) Release(_ context.Context, stocktakeID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, stocktakeID)
}

// fixture bundles the fakes behind a NoOpTransactionScope
type fixture struct {
	hotelID   uuid.UUID
	items     *memItemRepo
	periods   *memPeriodRepo
	takes     *memStocktakeRepo
	snapshots *memSnapshotRepo
	scope     *NoOpTransactionScope
	valuator  *stock.Valuator
	guard     *fakeGuard
	events    *MockEventPublisher
}

func newFixture() *fixture {
	f := &fixture{
		hotelID:   uuid.New(),
		items:     newMemItemRepo(),
		periods:   newMemPeriodRepo(),
		takes:     newMemStocktakeRepo(),
		snapshots: newMemSnapshotRepo(),
		valuator:  stock.NewValuator(stock.NewDefaultConverter()),
		guard:     newFakeGuard(),
		events:    NewMockEventPublisher(),
	}
	f.scope = NewNoOpTransactionScope(f.items, f.periods, f.takes, f.snapshots)
	return f
}

var _ stock.StockItemRepository = (*memItemRepo)(nil)
var _ stock.StockPeriodRepository = (*memPeriodRepo)(nil)
var _ stock.StocktakeRepository = (*memStocktakeRepo)(nil)
var _ stock.StockSnapshotRepository = (*memSnapshotRepo)(nil)
