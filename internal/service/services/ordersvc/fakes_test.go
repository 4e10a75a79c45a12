package ordersvc

import (
	"context"
	"sync"
	"time"

	"github.com/kasikotas/order/internal/dal/interfaces/ilimitrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iproductrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/ipromorepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iuserrepo"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/orderitem"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/kasikotas/order/internal/service/models/outbox"
	"github.com/kasikotas/order/internal/service/models/product"
	"github.com/kasikotas/order/internal/service/models/promocode"
	"github.com/kasikotas/order/internal/service/models/user"
)

// memStore is an in-memory stand-in for the database. txMu serializes whole
// transactions the way row locks would; mu guards individual calls.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users    map[int64]user.User
	products map[int64]product.Product
	promos   map[string]promocode.PromoCode
	limit    *orderlimit.OrderLimit
	orders   map[int64]order.Order
	items    map[int64]orderitem.OrderItem

	nextOrderID int64
	nextItemID  int64
	nextPromoID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]user.User),
		products: make(map[int64]product.Product),
		promos:   make(map[string]promocode.PromoCode),
		orders:   make(map[int64]order.Order),
		items:    make(map[int64]orderitem.OrderItem),
	}
}

type memSnapshot struct {
	products map[int64]product.Product
	promos   map[string]promocode.PromoCode
	limit    *orderlimit.OrderLimit
	orders   map[int64]order.Order
	items    map[int64]orderitem.OrderItem

	nextOrderID int64
	nextItemID  int64
	nextPromoID int64
}

func (s *memStore) snapshot() *memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &memSnapshot{
		products:    make(map[int64]product.Product, len(s.products)),
		promos:      make(map[string]promocode.PromoCode, len(s.promos)),
		orders:      make(map[int64]order.Order, len(s.orders)),
		items:       make(map[int64]orderitem.OrderItem, len(s.items)),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
		nextPromoID: s.nextPromoID,
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.promos {
		snap.promos[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	if s.limit != nil {
		l := *s.limit
		snap.limit = &l
	}

	return snap
}

func (s *memStore) restore(snap *memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.promos = snap.promos
	s.orders = snap.orders
	s.items = snap.items
	s.limit = snap.limit
	s.nextOrderID = snap.nextOrderID
	s.nextItemID = snap.nextItemID
	s.nextPromoID = snap.nextPromoID
}

// fakeUOW implements the unitOfWork interface over a memStore.
type fakeUOW struct {
	store *memStore
	snap  *memSnapshot
	began bool
}

func newFakeUOW(store *memStore) *fakeUOW {
	return &fakeUOW{store: store}
}

func (u *fakeUOW) Begin(ctx context.Context) error {
	u.store.txMu.Lock()
	u.snap = u.store.snapshot()
	u.began = true

	return nil
}

func (u *fakeUOW) Commit(ctx context.Context) error {
	if !u.began {
		return nil
	}
	u.began = false
	u.snap = nil
	u.store.txMu.Unlock()

	return nil
}

func (u *fakeUOW) Rollback(ctx context.Context) {
	if !u.began {
		return
	}
	u.began = false
	u.store.restore(u.snap)
	u.snap = nil
	u.store.txMu.Unlock()
}

func (u *fakeUOW) OrderRepository() iorderrepo.PostgresRepository {
	return &fakeOrderRepo{store: u.store}
}

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.PostgresRepository {
	return &fakeOrderItemRepo{store: u.store}
}

func (u *fakeUOW) ProductRepository() iproductrepo.PostgresRepository {
	return &fakeProductRepo{store: u.store}
}

func (u *fakeUOW) PromoCodeRepository() ipromorepo.PostgresRepository {
	return &fakePromoRepo{store: u.store}
}

func (u *fakeUOW) OrderLimitRepository() ilimitrepo.PostgresRepository {
	return &fakeLimitRepo{store: u.store}
}

func (u *fakeUOW) UserRepository() iuserrepo.PostgresRepository {
	return &fakeUserRepo{store: u.store}
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}

	return &u, nil
}

func (r *fakeUserRepo) GetByIds(ctx context.Context, ids []int64) ([]user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []user.User
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			result = append(result, u)
		}
	}

	return result, nil
}

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, apperr.ErrProductNotFound
	}

	return &p, nil
}

func (r *fakeProductRepo) Reserve(ctx context.Context, id int64, quantity int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok || p.Stock < quantity {
		return 0, apperr.ErrInsufficientStock
	}
	p.Stock -= quantity
	r.store.products[id] = p

	return p.Stock, nil
}

func (r *fakeProductRepo) Release(ctx context.Context, id int64, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return apperr.ErrProductNotFound
	}
	p.Stock += quantity
	r.store.products[id] = p

	return nil
}

type fakePromoRepo struct{ store *memStore }

func (r *fakePromoRepo) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.promos[code]
	if !ok {
		return nil, apperr.ErrPromoNotFound
	}

	return &p, nil
}

func (r *fakePromoRepo) IncrementUsage(ctx context.Context, code string) (*promocode.PromoCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.promos[code]
	if !ok {
		return nil, apperr.ErrPromoNotFound
	}
	if p.UsageCount >= p.MaxUsages {
		return nil, apperr.ErrPromoLimitReached
	}
	p.UsageCount++
	p.Version++
	r.store.promos[code] = p

	return &p, nil
}

func (r *fakePromoRepo) Insert(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextPromoID++
	p.ID = r.store.nextPromoID
	r.store.promos[p.Code] = p

	return p, nil
}

func (r *fakePromoRepo) List(ctx context.Context) ([]promocode.PromoCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []promocode.PromoCode
	for _, p := range r.store.promos {
		result = append(result, p)
	}

	return result, nil
}

func (r *fakePromoRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for code, p := range r.store.promos {
		if p.ID == id {
			delete(r.store.promos, code)

			return nil
		}
	}

	return apperr.ErrPromoNotFound
}

type fakeLimitRepo struct{ store *memStore }

func (r *fakeLimitRepo) Get(ctx context.Context) (*orderlimit.OrderLimit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.limit == nil {
		return nil, apperr.ErrLimitNotSet
	}
	l := *r.store.limit

	return &l, nil
}

func (r *fakeLimitRepo) Upsert(ctx context.Context, limit orderlimit.OrderLimit) (orderlimit.OrderLimit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	limit.ID = 1
	r.store.limit = &limit

	return limit, nil
}

type fakeOrderRepo struct{ store *memStore }

func (r *fakeOrderRepo) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextOrderID++
	o.ID = r.store.nextOrderID
	r.store.orders[o.ID] = o

	return o, nil
}

func (r *fakeOrderRepo) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []order.Order
	for id := int64(1); id <= r.store.nextOrderID; id++ {
		o, ok := r.store.orders[id]
		if !ok {
			continue
		}
		if len(filter.Ids) > 0 && !containsID(filter.Ids, o.ID) {
			continue
		}
		if len(filter.UserIds) > 0 && !containsID(filter.UserIds, o.UserID) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Scheduled && o.ScheduledDeliveryTime == nil {
			continue
		}
		if filter.ScheduledFrom != nil && (o.ScheduledDeliveryTime == nil || o.ScheduledDeliveryTime.Before(*filter.ScheduledFrom)) {
			continue
		}
		if filter.ScheduledTo != nil && (o.ScheduledDeliveryTime == nil || o.ScheduledDeliveryTime.After(*filter.ScheduledTo)) {
			continue
		}
		o.OrderItems = nil
		result = append(result, o)
	}

	if filter.Offset > 0 && filter.Offset < len(result) {
		result = result[filter.Offset:]
	} else if filter.Offset >= len(result) && filter.Offset > 0 {
		result = nil
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (r *fakeOrderRepo) SetStatus(ctx context.Context, id int64, status order.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[id]
	if !ok {
		return apperr.ErrOrderNotFound
	}
	o.Status = status
	o.Version++
	o.UpdatedAt = time.Now()
	r.store.orders[id] = o

	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[id]; !ok {
		return apperr.ErrOrderNotFound
	}
	delete(r.store.orders, id)
	for itemID, item := range r.store.items {
		if item.OrderID == id {
			delete(r.store.items, itemID)
		}
	}

	return nil
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.orders)), nil
}

func (r *fakeOrderRepo) SumQuantitiesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sum int64
	for _, item := range r.store.items {
		o, ok := r.store.orders[item.OrderID]
		if !ok || o.Status == order.StatusCancelled {
			continue
		}
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		sum += int64(item.Quantity)
	}

	return sum, nil
}

type fakeOrderItemRepo struct{ store *memStore }

func (r *fakeOrderItemRepo) BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]orderitem.OrderItem, len(orderItems))
	for i, item := range orderItems {
		r.store.nextItemID++
		item.ID = r.store.nextItemID
		r.store.items[item.ID] = item
		result[i] = item
	}

	return result, nil
}

func (r *fakeOrderItemRepo) QueryByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []orderitem.OrderItem
	for id := int64(1); id <= r.store.nextItemID; id++ {
		item, ok := r.store.items[id]
		if !ok {
			continue
		}
		if containsID(orderIds, item.OrderID) {
			result = append(result, item)
		}
	}

	return result, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

// fakeOutbox records enqueued notifications.
type fakeOutbox struct {
	mu       sync.Mutex
	messages []outbox.Message
}

func (f *fakeOutbox) Insert(ctx context.Context, msg outbox.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)

	return nil
}

func (f *fakeOutbox) GetPendingMessages(ctx context.Context, limit int) ([]outbox.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]outbox.Message(nil), f.messages...), nil
}

func (f *fakeOutbox) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	return nil
}

func (f *fakeOutbox) Delete(ctx context.Context, id int64) error {
	return nil
}
