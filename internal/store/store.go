// Package store holds all mutable canteen state: the menu catalog, the
// order ledger, the capacity limit and the token counter. Every mutation
// is a single atomic method guarded by one mutex; readers receive deep
// copies, never references into shared state.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"canteen/internal/errs"
	"canteen/internal/models"
	"canteen/internal/monitoring"
	"canteen/internal/notify"
)

// OrderLine is one requested (item, quantity) pair at admission.
type OrderLine struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// OrderRequest is the admission input. The caller resolves the acting user
// before building it; an empty UserID admits as "guest".
type OrderRequest struct {
	UserID              string
	Items               []OrderLine
	SpecialInstructions string
	PaymentMethod       string
}

// MenuItemPatch carries the staff-editable menu fields; nil means "leave
// unchanged".
type MenuItemPatch struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Price     *int    `json:"price"`
	Veg       *bool   `json:"veg"`
	Available *bool   `json:"available"`
}

// Store is the single source of truth for menu, orders and capacity.
// Events are published while the mutation is still serialized, so per-order
// event order always matches commit order; the bus only performs
// non-blocking sends, so publishing never stalls a writer.
type Store struct {
	mu           sync.RWMutex
	menu         []*models.MenuItem
	menuIndex    map[string]*models.MenuItem
	orders       []*models.Order
	tokenCounter int64
	maxPreparing int
	bus          *notify.Bus
	log          *zap.Logger
}

func New(bus *notify.Bus, maxPreparing int, log *zap.Logger) *Store {
	if maxPreparing < 1 {
		maxPreparing = 1
	}
	return &Store{
		menuIndex:    make(map[string]*models.MenuItem),
		maxPreparing: maxPreparing,
		bus:          bus,
		log:          log,
	}
}

// SeedMenu loads the initial catalog. Items without an ID get one assigned;
// seeded items default to available. No events are published for seeding.
func (s *Store) SeedMenu(items []models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		mi := item
		if mi.ID == "" {
			mi.ID = uuid.NewString()
		}
		mi.Available = true
		s.menu = append(s.menu, &mi)
		s.menuIndex[mi.ID] = &mi
	}
	s.log.Info("menu seeded", zap.Int("items", len(items)))
}

// CreateMenuItem adds a new catalog item and announces it.
func (s *Store) CreateMenuItem(item models.MenuItem) (models.MenuItem, error) {
	if item.Name == "" || item.Price < 0 {
		return models.MenuItem{}, errs.New(errs.InvalidInput, "missing_fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mi := item
	mi.ID = uuid.NewString()
	mi.Available = true
	s.menu = append(s.menu, &mi)
	s.menuIndex[mi.ID] = &mi

	out := mi
	s.bus.Publish(notify.TopicInventoryUpdate, out)
	return out, nil
}

// PatchMenuItem applies a staff edit to the named catalog fields and
// announces the updated item. Past order totals are unaffected: line
// prices are captured at admission.
func (s *Store) PatchMenuItem(id string, patch MenuItemPatch) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mi, ok := s.menuIndex[id]
	if !ok {
		return models.MenuItem{}, errs.New(errs.NotFound, "not_found")
	}
	if patch.Name != nil {
		mi.Name = *patch.Name
	}
	if patch.Category != nil {
		mi.Category = *patch.Category
	}
	if patch.Price != nil {
		mi.Price = *patch.Price
	}
	if patch.Veg != nil {
		mi.Veg = *patch.Veg
	}
	if patch.Available != nil {
		mi.Available = *patch.Available
	}

	out := *mi
	s.bus.Publish(notify.TopicInventoryUpdate, out)
	return out, nil
}

// MenuItems returns the catalog in insertion order, optionally filtered by
// category.
func (s *Store) MenuItems(category string) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MenuItem, 0, len(s.menu))
	for _, mi := range s.menu {
		if category != "" && mi.Category != category {
			continue
		}
		out = append(out, *mi)
	}
	return out
}

// MenuItem looks up a single catalog item.
func (s *Store) MenuItem(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mi, ok := s.menuIndex[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return *mi, true
}

// PlaceOrder admits a new order: resolves and prices the requested lines
// against the current catalog, freezes the total, assigns the next token
// number, computes the ETA from current preparing load, appends the order
// and publishes order:new. On any failure the ledger is left untouched.
func (s *Store) PlaceOrder(req OrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errs.New(errs.InvalidInput, "invalid_items")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		mi, ok := s.menuIndex[line.ItemID]
		if !ok {
			continue
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.OrderItem{ItemID: mi.ID, Qty: qty, Price: mi.Price})
	}
	if len(lines) == 0 {
		return models.Order{}, errs.New(errs.InvalidInput, "no_valid_items")
	}

	total := 0
	for _, it := range lines {
		total += it.Qty * it.Price
	}

	preparing := 0
	for _, o := range s.orders {
		if o.Status == models.OrderStatusPreparing {
			preparing++
		}
	}

	userID := req.UserID
	if userID == "" {
		userID = "guest"
	}
	payment := models.PaymentCash
	if req.PaymentMethod == string(models.PaymentOnline) {
		payment = models.PaymentOnline
	}

	now := time.Now()
	s.tokenCounter++
	order := &models.Order{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Items:               lines,
		TotalAmount:         total,
		Status:              models.OrderStatusPlaced,
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
		TokenNumber:         s.tokenCounter,
		ETA:                 EstimateETA(preparing, s.maxPreparing),
		Prepaid:             payment == models.PaymentOnline,
		PaymentMethod:       payment,
		Messages:            []models.OrderMessage{},
		CreatedHourKey:      models.HourKey(now),
	}
	s.orders = append(s.orders, order)

	monitoring.OrdersPlaced.Inc()
	out := cloneOrder(order)
	s.bus.Publish(notify.TopicOrderNew, out)
	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int64("token", order.TokenNumber),
		zap.Int("total", order.TotalAmount),
		zap.Int("eta_minutes", order.ETA))
	return out, nil
}

// UpdateOrderStatus replaces an order's status, stamps UpdatedAt and
// publishes order:update. Target validity and caller authorization are the
// transport layer's concern; the ledger only rejects unknown ids.
func (s *Store) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Order{}, errs.New(errs.NotFound, "not_found")
	}
	order.Status = status
	order.UpdatedAt = time.Now()

	monitoring.StatusTransitions.WithLabelValues(string(status)).Inc()
	out := cloneOrder(order)
	s.bus.Publish(notify.TopicOrderUpdate, out)
	return out, nil
}

// AppendOrderMessage attaches a timestamped staff note to an order and
// publishes order:message with the order id and the note.
func (s *Store) AppendOrderMessage(id string, from models.Role, text string) (models.Order, error) {
	if text == "" {
		return models.Order{}, errs.New(errs.InvalidInput, "missing_text")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(id)
	if order == nil {
		return models.Order{}, errs.New(errs.NotFound, "not_found")
	}
	msg := models.OrderMessage{From: string(from), Text: text, At: time.Now()}
	order.Messages = append(order.Messages, msg)
	order.UpdatedAt = msg.At

	out := cloneOrder(order)
	s.bus.Publish(notify.TopicOrderMessage, notify.MessagePayload{OrderID: order.ID, Message: msg})
	return out, nil
}

// Orders returns ledger entries in admission order, optionally filtered by
// user and status.
func (s *Store) Orders(userID string, status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out
}

// OrdersSnapshot returns a consistent copy of the whole ledger for
// analytics and recommendation reads.
func (s *Store) OrdersSnapshot() []models.Order {
	return s.Orders("", "")
}

// PreparingCount reports how many orders are currently preparing.
func (s *Store) PreparingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, o := range s.orders {
		if o.Status == models.OrderStatusPreparing {
			n++
		}
	}
	return n
}

// SetMaxPreparing reconfigures kitchen throughput. Only future admissions
// see the new value; frozen ETAs are never revisited.
func (s *Store) SetMaxPreparing(n int) error {
	if n < 1 {
		return errs.New(errs.InvalidInput, "invalid")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPreparing = n
	s.log.Info("capacity updated", zap.Int("max_preparing", n))
	return nil
}

// MaxPreparing returns the configured concurrency limit.
func (s *Store) MaxPreparing() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxPreparing
}

// findOrder must be called with the lock held.
func (s *Store) findOrder(id string) *models.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func cloneOrder(o *models.Order) models.Order {
	out := *o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	out.Messages = append([]models.OrderMessage(nil), o.Messages...)
	return out
}
