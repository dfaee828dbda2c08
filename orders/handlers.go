package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"munchmate/db"
	"munchmate/models"
	"munchmate/mq"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reader loads one customer's stored invoices.
type Reader interface {
	ByUser(ctx context.Context, uid string) ([]models.Invoice, error)
}

// MongoReader reads invoices from the invoices collection.
type MongoReader struct {
	Coll *mongo.Collection
}

func NewMongoReader() *MongoReader {
	return &MongoReader{Coll: db.InvoicesCollection}
}

func (m *MongoReader) ByUser(ctx context.Context, uid string) ([]models.Invoice, error) {
	return utils.FindAndDecode[models.Invoice](ctx, m.Coll, bson.M{"customer.uid": uid})
}

// Handler serves the order-history list.
type Handler struct {
	Invoices Reader
}

func NewHandler(invoices Reader) *Handler {
	return &Handler{Invoices: invoices}
}

// ListOrders returns the caller's past orders, newest first. No pagination:
// histories are short for a single storefront.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	invoices, err := h.Invoices.ByUser(ctx, userID)
	if err != nil {
		log.Println("ListOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	SortNewestFirst(invoices)

	summaries := make([]OrderSummary, 0, len(invoices))
	for _, inv := range invoices {
		summaries = append(summaries, Summarize(inv))
	}

	utils.RespondWithJSON(w, http.StatusOK, summaries)
}

// GetOrder returns one order's detail view, with guarded numeric fields.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	invoiceNr := ps.ByName("invoicenr")

	var inv models.Invoice
	err := db.InvoicesCollection.FindOne(ctx, bson.M{
		"invoiceNumber": invoiceNr,
		"customer.uid":  userID,
	}).Decode(&inv)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	type itemView struct {
		models.InvoiceItem
		SubtotalText string `json:"subtotalText"`
	}
	items := make([]itemView, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, itemView{InvoiceItem: item, SubtotalText: SubtotalText(item)})
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"invoice":   inv,
		"items":     items,
		"itemCount": ItemCount(inv),
		"totalText": TotalText(inv),
	})
}

// OrderQR returns the verification QR for an order as a PNG.
func OrderQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	invoiceNr := ps.ByName("invoicenr")

	var inv models.Invoice
	err := db.InvoicesCollection.FindOne(ctx, bson.M{
		"invoiceNumber": invoiceNr,
		"customer.uid":  userID,
	}).Decode(&inv)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(inv.InvoiceNumber+"|"+inv.FormattedDate, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

var allowedStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusPreparing: true,
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

// UpdateStatus is the fulfillment-side mutation: the only field of a
// persisted invoice that ever changes. Staff only.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	invoiceNr := ps.ByName("invoicenr")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !allowedStatuses[body.Status] {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	var inv models.Invoice
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := db.InvoicesCollection.FindOneAndUpdate(ctx,
		bson.M{"invoiceNumber": invoiceNr},
		bson.M{"$set": bson.M{"deliveryStatus": body.Status}},
		opts,
	).Decode(&inv)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	go mq.Emit(context.Background(), mq.OrderEvent{
		Kind:          "status-changed",
		InvoiceNumber: inv.InvoiceNumber,
		UserID:        inv.Customer.UID,
		Status:        body.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  body.Status,
	})
}
