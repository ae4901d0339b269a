package models

import "time"

// OrderStatus represents the possible states of an order.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TransitionTargets lists the statuses a staff update may move an order to.
// "placed" is only ever assigned at admission.
var TransitionTargets = []OrderStatus{
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsTransitionTarget reports whether s is a valid target for a status update.
func IsTransitionTarget(s OrderStatus) bool {
	for _, t := range TransitionTargets {
		if s == t {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is expected from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PaymentMethod is how an order is paid for.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// OrderItem is one line of an order. Price is captured from the catalog at
// admission time and never re-read, so later menu edits cannot change it.
type OrderItem struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
	Price  int    `json:"price"`
}

// OrderMessage is a staff note attached to an order.
type OrderMessage struct {
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Order is a customer order. TotalAmount, ETA and TokenNumber are frozen at
// admission; Status and Messages are the only fields mutated afterwards.
type Order struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"userId"`
	Items               []OrderItem    `json:"items"`
	TotalAmount         int            `json:"totalAmount"`
	Status              OrderStatus    `json:"status"`
	SpecialInstructions string         `json:"specialInstructions"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	TokenNumber         int64          `json:"tokenNumber"`
	ETA                 int            `json:"eta"`
	Prepaid             bool           `json:"prepaid"`
	PaymentMethod       PaymentMethod  `json:"paymentMethod"`
	Messages            []OrderMessage `json:"messages"`
	CreatedHourKey      string         `json:"createdHourKey"`
}

// ItemsCount returns the total quantity across all line items.
func (o *Order) ItemsCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}

// HourKey buckets a timestamp into the calendar hour it falls in, UTC.
func HourKey(t time.Time) string {
	return t.UTC().Format("2006-01-02T15")
}
