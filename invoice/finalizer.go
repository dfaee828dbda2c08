package invoice

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"munchmate/db"
	"munchmate/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Writer appends an invoice record to the remote store.
type Writer interface {
	Insert(ctx context.Context, inv models.Invoice) (string, error)
}

// LocalStore is the durable fallback used when the remote write fails.
type LocalStore interface {
	Put(key string, v any) error
}

// MongoWriter appends invoices to the invoices collection.
type MongoWriter struct {
	Coll *mongo.Collection
}

func NewMongoWriter() *MongoWriter {
	return &MongoWriter{Coll: db.InvoicesCollection}
}

func (m *MongoWriter) Insert(ctx context.Context, inv models.Invoice) (string, error) {
	res, err := m.Coll.InsertOne(ctx, inv)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

const persistTimeout = 10 * time.Second

// Outcome is the terminal state of one finalization attempt.
type Outcome string

const (
	SavedRemote     Outcome = "saved_remote"
	SavedLocal      Outcome = "saved_local"
	FailedEmergency Outcome = "failed_emergency"
)

// State is the caller-visible status of a Finalizer.
type State struct {
	IsSaving     bool
	InvoiceSaved bool
	Err          error
}

// Result of a completed finalization.
type Result struct {
	Invoice models.Invoice
	Outcome Outcome
	// Warning is non-fatal: set when the record only reached local storage.
	Warning string
}

// Finalizer persists at most one invoice per checkout session. The saved
// flag is checked and set under the lock, so repeated Finalize calls after
// the first attempt return the original result without a second write.
type Finalizer struct {
	remote Writer
	local  LocalStore

	mu     sync.Mutex
	saving bool
	saved  bool
	err    error
	result Result
}

func NewFinalizer(remote Writer, local LocalStore) *Finalizer {
	return &Finalizer{remote: remote, local: local}
}

// State reports the current saving/saved/error flags.
func (f *Finalizer) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{IsSaving: f.saving, InvoiceSaved: f.saved, Err: f.err}
}

// Finalize builds the invoice record from the grouped cart items, the
// customer snapshot, and the allocated serial number, then walks the
// persistence ladder: remote insert, local fallback keyed by invoice
// number, emergency snapshot. Each tier's failure is logged and demoted,
// never propagated as a panic, and a terminal state is always reached.
func (f *Finalizer) Finalize(ctx context.Context, items []models.LineItem, customer models.Customer, serial int, paymentID string) (Result, error) {
	f.mu.Lock()
	if f.saved {
		res, err := f.result, f.err
		f.mu.Unlock()
		return res, err
	}
	if f.saving {
		f.mu.Unlock()
		return Result{}, fmt.Errorf("finalization already in progress")
	}
	if len(items) == 0 {
		f.mu.Unlock()
		return Result{}, fmt.Errorf("cart is empty")
	}
	f.saving = true
	f.mu.Unlock()

	inv := buildInvoice(items, customer, serial, paymentID)

	// The write must outlive the request: a client hanging up mid-checkout
	// does not abort the insert against a healthy store.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	res, err := f.persist(pctx, inv)

	f.mu.Lock()
	f.saving = false
	f.saved = true
	f.result = res
	f.err = err
	f.mu.Unlock()
	return res, err
}

func (f *Finalizer) persist(ctx context.Context, inv models.Invoice) (Result, error) {
	// Tier 1: remote store.
	id, err := f.remote.Insert(ctx, inv)
	if err == nil {
		inv.ID = id
		return Result{Invoice: inv, Outcome: SavedRemote}, nil
	}
	log.Println("Finalize remote insert error:", err)

	// Tier 2: full record to local storage, keyed by invoice number.
	if lerr := f.local.Put("invoice_"+inv.InvoiceNumber, inv); lerr == nil {
		return Result{
			Invoice: inv,
			Outcome: SavedLocal,
			Warning: "Order saved locally; it will not appear in history until the store is reachable.",
		}, nil
	} else {
		log.Println("Finalize local fallback error:", lerr)
	}

	// Tier 3: minimal emergency snapshot, timestamp-keyed.
	snap := map[string]any{
		"invoiceNumber":  inv.InvoiceNumber,
		"date":           inv.FormattedDate,
		"customerName":   inv.Customer.Name,
		"items":          inv.Items,
		"total":          inv.TotalAmount,
		"deliveryStatus": inv.DeliveryStatus,
	}
	key := fmt.Sprintf("invoice_emergency_%d", time.Now().UnixMilli())
	if serr := f.local.Put(key, snap); serr != nil {
		log.Println("Finalize emergency snapshot error:", serr)
	}
	return Result{Invoice: inv, Outcome: FailedEmergency},
		fmt.Errorf("failed to save invoice; your order may not be recorded")
}

// buildInvoice takes the checkout-time snapshot. TotalAmount is computed
// once here, in integer paise, and stored verbatim.
func buildInvoice(items []models.LineItem, customer models.Customer, serial int, paymentID string) models.Invoice {
	now := time.Now()

	invItems := make([]models.InvoiceItem, 0, len(items))
	var totalPaise int64
	for _, li := range items {
		sub := li.Subtotal
		invItems = append(invItems, models.InvoiceItem{
			ID:       li.ID,
			Name:     li.Name,
			Price:    li.Price,
			Quantity: li.Quantity,
			Subtotal: &sub,
		})
		totalPaise += int64(math.Round(sub * 100))
	}
	total := float64(totalPaise) / 100

	return models.Invoice{
		SerialNumber:   serial,
		InvoiceNumber:  FormatInvoiceNumber(serial),
		OrderNumber:    FormatOrderNumber(serial),
		FormattedDate:  now.Format("02/01/2006"),
		Customer:       customer,
		Items:          invItems,
		TotalAmount:    &total,
		Tax:            0,
		PaymentID:      paymentID,
		DeliveryStatus: models.StatusPending,
		OrderType:      "Takeaway",
		CreatedAt:      now,
	}
}

// SnapshotCustomer builds the customer block stored on the invoice.
// Optional profile fields default to "Unknown"; a nil profile degrades to a
// guest snapshot derived from the signed-in identity.
func SnapshotCustomer(profile *models.StudentProfile, uid, authName, authEmail string) models.Customer {
	if profile == nil {
		name := authName
		if name == "" {
			name = authEmail
		}
		if name == "" {
			name = "Guest User"
		}
		return models.Customer{
			UID:           orUnknown(uid),
			Name:          name,
			Email:         orUnknown(authEmail),
			ContactNumber: "Unknown",
			RollNumber:    "Unknown",
			Department:    "Unknown",
			Section:       "Unknown",
			Semester:      "Unknown",
		}
	}
	return models.Customer{
		UID:           orUnknown(profile.UID),
		Name:          orUnknown(profile.Name),
		Email:         orUnknown(profile.Email),
		ContactNumber: orUnknown(profile.ContactNumber),
		RollNumber:    orUnknown(profile.RollNumber),
		Department:    orUnknown(profile.Department),
		Section:       orUnknown(profile.Section),
		Semester:      orUnknown(profile.Semester),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
