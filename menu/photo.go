package menu

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"munchmate/db"
	"munchmate/rdx"
	"munchmate/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var menuPicDir = "./static/menupic"

// UploadMenuPhoto stores a photo for a menu item and generates a thumbnail.
// Staff only.
func UploadMenuPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	menuID := ps.ByName("menuid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, handler, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Photo file missing")
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	id := uuid.New().String()
	fileName := id + ".jpg"
	thumbDir := filepath.Join(menuPicDir, "thumb")

	if err := utils.EnsureDir(menuPicDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}

	if err := imaging.Save(img, filepath.Join(menuPicDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving thumbnail")
		return
	}

	imageURL := "/menupic/" + fileName
	_, err = db.MenuCollection.UpdateOne(r.Context(),
		bson.M{"menuid": menuID},
		bson.M{"$set": bson.M{"image": imageURL, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	rdx.RdxDel(fmt.Sprintf("menu:%s", menuID))

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"imageUrl": imageURL,
		"thumbUrl": "/menupic/thumb/" + fileName,
	})
}
