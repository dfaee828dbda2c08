package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"munchmate/db"
	"munchmate/models"
	"munchmate/rdx"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReserveStock atomically decrements stock for a menu item, failing when
// fewer than quantity units remain. Returns the remaining stock.
func ReserveStock(ctx context.Context, menuID string, quantity int) (int, error) {
	filter := bson.M{
		"menuid": menuID,
		"stock":  bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.MenuItem
	if err := db.MenuCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return 0, err
	}

	if updated.Stock == 0 {
		db.MenuCollection.UpdateOne(ctx, bson.M{"menuid": menuID}, bson.M{"$set": bson.M{"available": false}})
	}
	rdx.RdxDel(fmt.Sprintf("menu:%s", menuID))

	return updated.Stock, nil
}

// GetStock reports the current stock of a menu item without caching.
func GetStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	menuID := ps.ByName("menuid")

	var item models.MenuItem
	err := db.MenuCollection.FindOne(r.Context(), bson.M{"menuid": menuID}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"id":        item.MenuID,
		"stock":     item.Stock,
		"available": item.Available,
	})
}

// BuyMenuItem checks stock and decrements it in a single update.
func BuyMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	menuID := ps.ByName("menuid")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	remaining, err := ReserveStock(ctx, menuID, body.Quantity)
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Insufficient stock or menu item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"remainingStock": remaining,
	})
}
