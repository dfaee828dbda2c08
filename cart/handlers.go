package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"munchmate/models"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes a user's session cart over HTTP. The Manager is injected
// rather than package-global so checkout owns the same instance.
type Handler struct {
	Carts *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Carts: m}
}

// AddItem appends one unit of the posted item to the caller's cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if item.Price < 0 {
		http.Error(w, "Price must be non-negative", http.StatusBadRequest)
		return
	}

	store := h.Carts.StoreFor(userID)
	if err := store.Add(item); err != nil {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"status": "added",
		"count":  store.Len(),
	})
}

// RemoveItem removes every unit of the given item id.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := ps.ByName("itemid")
	if itemID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	store := h.Carts.StoreFor(userID)
	store.Remove(itemID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": "removed",
		"count":  store.Len(),
	})
}

// DecreaseItem removes exactly one unit of the given item id.
func (h *Handler) DecreaseItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := ps.ByName("itemid")
	if itemID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	store := h.Carts.StoreFor(userID)
	store.Decrease(itemID)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": "decreased",
		"count":  store.Len(),
	})
}

// GetCart returns the grouped view of the caller's cart plus totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store := h.Carts.StoreFor(userID)
	grouped := store.Grouped()
	if grouped == nil {
		grouped = []models.LineItem{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"items":     grouped,
		"count":     store.Len(),
		"total":     store.Total(),
		"totalText": store.FormatTotal(),
	})
}

// ClearCart empties the caller's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.Carts.StoreFor(userID).Clear()
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
