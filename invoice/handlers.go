package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"munchmate/cart"
	"munchmate/db"
	"munchmate/fallback"
	"munchmate/models"
	"munchmate/mq"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler drives the explicit checkout workflow: load profile, allocate
// serial, finalize, respond. One Finalizer per checkout session, so a
// retried request cannot double-submit the same order.
type Handler struct {
	Carts   *cart.Manager
	Serials SerialSource
	Remote  Writer
	Local   *fallback.Store

	mu       sync.Mutex
	sessions map[string]*Finalizer
}

func NewHandler(carts *cart.Manager, serials SerialSource, remote Writer, local *fallback.Store) *Handler {
	return &Handler{
		Carts:    carts,
		Serials:  serials,
		Remote:   remote,
		Local:    local,
		sessions: make(map[string]*Finalizer),
	}
}

func (h *Handler) finalizerFor(uid, checkoutID string) *Finalizer {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := uid + ":" + checkoutID
	f, ok := h.sessions[key]
	if !ok {
		f = NewFinalizer(h.Remote, h.Local)
		h.sessions[key] = f

		// Forget the session after a while; its idempotency window is the
		// lifetime of one checkout screen, not forever.
		go func() {
			time.Sleep(30 * time.Minute)
			h.mu.Lock()
			delete(h.sessions, key)
			h.mu.Unlock()
		}()
	}
	return f
}

// Checkout finalizes the caller's cart into an invoice record.
// POST /api/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "No user is signed in. Please log in to continue.", http.StatusUnauthorized)
		return
	}

	var body struct {
		CheckoutID string `json:"checkoutId"`
		PaymentID  string `json:"paymentId"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Println("Checkout decode error:", err)
		}
	}
	if body.CheckoutID == "" {
		body.CheckoutID = utils.GenerateRandomString(12)
	}

	store := h.Carts.StoreFor(userID)
	items := store.Grouped()
	if len(items) == 0 {
		http.Error(w, "Your cart is empty", http.StatusBadRequest)
		return
	}

	// Profile read failure degrades to a guest snapshot; checkout continues.
	customer := h.loadCustomer(ctx, userID)

	serial := NextSerial(ctx, h.Serials)

	f := h.finalizerFor(userID, body.CheckoutID)
	res, err := f.Finalize(ctx, items, customer, serial, body.PaymentID)
	if err != nil {
		if res.Outcome == FailedEmergency {
			utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]any{
				"error":      "Failed to save invoice to database. A local copy has been stored.",
				"checkoutId": body.CheckoutID,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total := 0.0
	if res.Invoice.TotalAmount != nil {
		total = *res.Invoice.TotalAmount
	}
	go mq.Emit(context.Background(), mq.OrderEvent{
		Kind:          "order-created",
		InvoiceNumber: res.Invoice.InvoiceNumber,
		UserID:        userID,
		Status:        res.Invoice.DeliveryStatus,
		Total:         total,
	})

	resp := map[string]any{
		"invoice":    res.Invoice,
		"saved":      true,
		"outcome":    res.Outcome,
		"checkoutId": body.CheckoutID,
	}
	if res.Warning != "" {
		resp["warning"] = res.Warning
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// loadCustomer reads the student profile, falling back to the auth
// identity's display name/email, and finally to a plain guest snapshot.
func (h *Handler) loadCustomer(ctx context.Context, uid string) models.Customer {
	var profile models.StudentProfile
	err := db.ProfilesCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&profile)
	if err == nil {
		return SnapshotCustomer(&profile, uid, "", "")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Println("Checkout profile read error:", err)
	}

	var user models.User
	if uerr := db.UserCollection.FindOne(ctx, bson.M{"userid": uid}).Decode(&user); uerr == nil {
		return SnapshotCustomer(nil, uid, user.Name, user.Email)
	} else {
		log.Println("Checkout user read error:", uerr)
	}
	return SnapshotCustomer(nil, uid, "", "")
}
