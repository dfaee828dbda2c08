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

// CreateMenuItem adds a new item to the menu. Staff only.
func CreateMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
		Stock    int     `json:"stock"`
		Image    string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if len(body.Name) == 0 || len(body.Name) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 100 characters.")
		return
	}
	if body.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a non-negative number.")
		return
	}
	if body.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stock value. Must be a non-negative integer.")
		return
	}
	if body.Category == "" {
		body.Category = "General"
	}

	item := models.MenuItem{
		MenuID:    "m" + utils.GenerateRandomString(14),
		Name:      body.Name,
		Price:     body.Price,
		Category:  body.Category,
		Image:     body.Image,
		Stock:     body.Stock,
		Available: body.Stock > 0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.MenuCollection.InsertOne(ctx, item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert menu item: "+err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"ok":      true,
		"message": "Menu item created successfully.",
		"data":    item,
	})
}

// GetMenuItem fetches a single menu item, serving from cache when possible.
func GetMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	menuID := ps.ByName("menuid")
	cacheKey := fmt.Sprintf("menu:%s", menuID)

	cached, err := rdx.RdxGet(cacheKey)
	if err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	var item models.MenuItem
	err = db.MenuCollection.FindOne(r.Context(), bson.M{"menuid": menuID}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	itemJSON, _ := json.Marshal(item)
	rdx.RdxSetWithExpiry(cacheKey, string(itemJSON), 10*time.Minute)

	utils.RespondWithJSON(w, http.StatusOK, item)
}

// GetMenuItems lists the menu, optionally filtered by ?category= and ?q=.
func GetMenuItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if q := utils.NormalizeSearchTerm(r.URL.Query().Get("q")); q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	items, err := utils.FindAndDecode[models.MenuItem](ctx, db.MenuCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	if len(items) == 0 {
		items = []models.MenuItem{}
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GetCategories returns the distinct menu categories.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	values, err := db.MenuCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// EditMenuItem updates fields of a menu item. Staff only.
func EditMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	menuID := ps.ByName("menuid")

	var body struct {
		Name     string   `json:"name"`
		Price    *float64 `json:"price"`
		Category string   `json:"category"`
		Stock    *int     `json:"stock"`
		Image    string   `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	updateFields := bson.M{"updated_at": time.Now()}
	if body.Name != "" {
		updateFields["name"] = body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid price value. Must be a non-negative number.")
			return
		}
		updateFields["price"] = *body.Price
	}
	if body.Category != "" {
		updateFields["category"] = body.Category
	}
	if body.Stock != nil {
		if *body.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid stock value. Must be a non-negative integer.")
			return
		}
		updateFields["stock"] = *body.Stock
		updateFields["available"] = *body.Stock > 0
	}
	if body.Image != "" {
		updateFields["image"] = body.Image
	}

	result, err := db.MenuCollection.UpdateOne(ctx, bson.M{"menuid": menuID}, bson.M{"$set": updateFields})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update menu item: "+err.Error())
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	rdx.RdxDel(fmt.Sprintf("menu:%s", menuID))

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Menu item updated successfully",
	})
}

// DeleteMenuItem removes a menu item. Staff only.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	menuID := ps.ByName("menuid")

	result, err := db.MenuCollection.DeleteOne(ctx, bson.M{"menuid": menuID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete menu item: "+err.Error())
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	rdx.RdxDel(fmt.Sprintf("menu:%s", menuID))

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Menu item deleted successfully",
	})
}
