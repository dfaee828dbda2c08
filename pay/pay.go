package pay

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"munchmate/cart"
	"munchmate/invoice"
	"munchmate/rdx"
	"munchmate/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const sessionTTL = 15 * time.Minute

// Session is a pending payment for a cart total. Amount is in paise.
type Session struct {
	SessionID   string `json:"sessionId"`
	OrderNumber string `json:"orderNumber"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	URL         string `json:"url"`
	CreatedAt   int64  `json:"createdAt"`
}

// CreateSession builds a payment session for the given total. The gateway
// URL is a stub; there is no real charge behind it.
func CreateSession(orderNumber string, totalPaise int64) (Session, error) {
	s := Session{
		SessionID:   "ps_" + uuid.New().String(),
		OrderNumber: orderNumber,
		Amount:      totalPaise,
		Currency:    "INR",
		URL:         "http://localhost:5173/pay/" + orderNumber,
		CreatedAt:   time.Now().Unix(),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return Session{}, err
	}
	if err := rdx.RdxSetWithExpiry("paysession:"+s.SessionID, string(data), sessionTTL); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Handler exposes the payment endpoints.
type Handler struct {
	Carts *cart.Manager
}

func NewHandler(carts *cart.Manager) *Handler {
	return &Handler{Carts: carts}
}

// StartPayment creates a session for the caller's current cart total.
func (h *Handler) StartPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	store := h.Carts.StoreFor(userID)
	if store.Len() == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	orderNumber := invoice.FormatOrderNumber(rand.Intn(10000))
	session, err := CreateSession(orderNumber, store.TotalPaise())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create payment session")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, session)
}

// ConfirmPayment settles a demo session and returns the payment id that
// checkout accepts. Paying later is allowed; the id is simply omitted.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		SessionID string `json:"sessionId"`
		PayLater  bool   `json:"payLater"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if body.PayLater {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status": "pay_later",
		})
		return
	}

	if body.SessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	cached, err := rdx.RdxGet("paysession:" + body.SessionID)
	if err != nil || cached == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Payment session not found or expired")
		return
	}

	var session Session
	if err := json.Unmarshal([]byte(cached), &session); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Corrupt payment session")
		return
	}
	rdx.RdxDel("paysession:" + body.SessionID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":      "paid",
		"paymentId":   "pay_" + uuid.New().String(),
		"orderNumber": session.OrderNumber,
		"amountText":  FormatPaise(session.Amount),
	})
}

// FormatPaise renders a paise amount as rupees with two decimals.
func FormatPaise(paise int64) string {
	return fmt.Sprintf("%.2f", math.Round(float64(paise))/100)
}
