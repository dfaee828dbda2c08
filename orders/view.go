package orders

import (
	"fmt"
	"sort"

	"munchmate/models"
)

// NotAvailable is rendered wherever a legacy record is missing a numeric
// field; display code must never assume totals or subtotals are present.
const NotAvailable = "Price not available"

// OrderSummary is the list-view shape of one past order.
type OrderSummary struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	CreatedAt     string `json:"createdAt"`
	Status        string `json:"status"`
	ItemCount     int    `json:"itemCount"`
	TotalText     string `json:"totalText"`
}

// ItemCount sums quantities across the order's line items.
func ItemCount(inv models.Invoice) int {
	count := 0
	for _, item := range inv.Items {
		count += item.Quantity
	}
	return count
}

// TotalText formats the stored total, guarding for records that lack it.
func TotalText(inv models.Invoice) string {
	if inv.TotalAmount == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", *inv.TotalAmount)
}

// SubtotalText formats a line item's stored subtotal; when absent it is
// recomputed from price and quantity for display only, never written back.
func SubtotalText(item models.InvoiceItem) string {
	if item.Subtotal != nil {
		return fmt.Sprintf("%.2f", *item.Subtotal)
	}
	if item.Quantity > 0 {
		return fmt.Sprintf("%.2f", item.Price*float64(item.Quantity))
	}
	return NotAvailable
}

// SortNewestFirst orders invoices by creation time descending, in place.
func SortNewestFirst(invs []models.Invoice) {
	sort.SliceStable(invs, func(i, j int) bool {
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
}

// Summarize builds the list-view projection of an invoice.
func Summarize(inv models.Invoice) OrderSummary {
	return OrderSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CreatedAt:     inv.CreatedAt.Format("02/01/2006 15:04"),
		Status:        inv.DeliveryStatus,
		ItemCount:     ItemCount(inv),
		TotalText:     TotalText(inv),
	}
}
