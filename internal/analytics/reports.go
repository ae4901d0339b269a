package analytics

import (
	"time"

	"github.com/gocarina/gocsv"

	"canteen/internal/models"
)

// Report kinds. Anything other than orders/item_sales falls through to the
// per-hour slot revenue report.
const (
	ReportOrders    = "orders"
	ReportItemSales = "item_sales"
)

// Column order in these row types is a compatibility contract; do not
// reorder fields.

type orderRow struct {
	ID          string `csv:"id"`
	UserID      string `csv:"userId"`
	ItemsCount  int    `csv:"itemsCount"`
	TotalAmount int    `csv:"totalAmount"`
	Status      string `csv:"status"`
	CreatedAt   string `csv:"createdAt"`
}

type itemSalesRow struct {
	Name    string `csv:"name"`
	QtySold int    `csv:"qtySold"`
	Revenue int    `csv:"revenue"`
}

type slotRow struct {
	Slot        string `csv:"slot"`
	OrdersCount int    `csv:"ordersCount"`
	Revenue     int    `csv:"revenue"`
}

// Report renders a CSV report of the requested kind over orders created in
// [from, to].
func Report(orders []models.Order, menu []models.MenuItem, kind string, from, to time.Time) (string, error) {
	list := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		list = append(list, o)
	}

	switch kind {
	case ReportOrders:
		rows := make([]orderRow, 0, len(list))
		for _, o := range list {
			rows = append(rows, orderRow{
				ID:          o.ID,
				UserID:      o.UserID,
				ItemsCount:  o.ItemsCount(),
				TotalAmount: o.TotalAmount,
				Status:      string(o.Status),
				CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return gocsv.MarshalString(&rows)

	case ReportItemSales:
		byID := make(map[string]models.MenuItem, len(menu))
		for _, mi := range menu {
			byID[mi.ID] = mi
		}
		totals := make(map[string]*itemSalesRow)
		var names []string
		for _, o := range list {
			for _, it := range o.Items {
				name := it.ItemID
				if mi, ok := byID[it.ItemID]; ok {
					name = mi.Name
				}
				row, ok := totals[name]
				if !ok {
					row = &itemSalesRow{Name: name}
					totals[name] = row
					names = append(names, name)
				}
				row.QtySold += it.Qty
				row.Revenue += it.Qty * it.Price
			}
		}
		rows := make([]itemSalesRow, 0, len(names))
		for _, name := range names {
			rows = append(rows, *totals[name])
		}
		return gocsv.MarshalString(&rows)

	default:
		buckets := make(map[string]*slotRow)
		var slots []string
		for _, o := range list {
			row, ok := buckets[o.CreatedHourKey]
			if !ok {
				row = &slotRow{Slot: o.CreatedHourKey}
				buckets[o.CreatedHourKey] = row
				slots = append(slots, o.CreatedHourKey)
			}
			row.OrdersCount++
			row.Revenue += o.TotalAmount
		}
		rows := make([]slotRow, 0, len(slots))
		for _, slot := range slots {
			rows = append(rows, *buckets[slot])
		}
		return gocsv.MarshalString(&rows)
	}
}
