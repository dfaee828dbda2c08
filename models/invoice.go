package models

import "time"

// Customer is the snapshot of profile details taken at checkout time.
// Missing optional fields are stored as "Unknown" so old records and guest
// checkouts render uniformly.
type Customer struct {
	UID           string `json:"uid" bson:"uid"`
	Name          string `json:"name" bson:"name"`
	Email         string `json:"email" bson:"email"`
	ContactNumber string `json:"contactNumber" bson:"contactNumber"`
	RollNumber    string `json:"rollNumber" bson:"rollNumber"`
	Department    string `json:"department" bson:"department"`
	Section       string `json:"section" bson:"section"`
	Semester      string `json:"semester" bson:"semester"`
}

// InvoiceItem is a grouped line-item snapshot. Subtotal is a pointer because
// records written before subtotals were persisted lack the field; every
// display path must guard for nil.
type InvoiceItem struct {
	ID       string   `json:"id" bson:"id"`
	Name     string   `json:"name" bson:"name"`
	Price    float64  `json:"price" bson:"price"`
	Quantity int      `json:"quantity" bson:"quantity"`
	Subtotal *float64 `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
}

// Invoice is the immutable record of a completed checkout. Only
// DeliveryStatus is ever mutated after creation, by the fulfillment side.
type Invoice struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty"`
	SerialNumber   int           `json:"serialNumber" bson:"serialNumber"`
	InvoiceNumber  string        `json:"invoiceNumber" bson:"invoiceNumber"`
	OrderNumber    string        `json:"orderNumber,omitempty" bson:"orderNumber,omitempty"`
	FormattedDate  string        `json:"formattedDate" bson:"formattedDate"`
	Customer       Customer      `json:"customer" bson:"customer"`
	Items          []InvoiceItem `json:"items" bson:"items"`
	TotalAmount    *float64      `json:"totalAmount,omitempty" bson:"totalAmount,omitempty"`
	Tax            float64       `json:"tax" bson:"tax"`
	PaymentID      string        `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	DeliveryStatus string        `json:"deliveryStatus" bson:"deliveryStatus"`
	OrderType      string        `json:"orderType" bson:"orderType"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
}

// Delivery statuses used by the fulfillment workflow.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)
