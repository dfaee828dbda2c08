package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"munchmate/db"
	"munchmate/models"
	"munchmate/rdx"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var departments = map[string]bool{
	"Computer Science": true,
	"Electronics":      true,
	"Mechanical":       true,
	"Civil":            true,
	"Electrical":       true,
	"Management":       true,
	"Sciences":         true,
	"Humanities":       true,
}

var sections = map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}

var semesters = map[string]bool{
	"1st": true, "2nd": true, "3rd": true, "4th": true,
	"5th": true, "6th": true, "7th": true, "8th": true,
}

var contactPattern = regexp.MustCompile(`^\d{10}$`)

// GetProfile returns the caller's student profile, or 404 when none has
// been saved yet (the frontend then shows the details form).
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile models.StudentProfile
	err := db.ProfilesCollection.FindOne(ctx, bson.M{"uid": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Println("GetProfile FindOne error:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// SaveProfile upserts the caller's student details. Contact details are
// only accepted after the phone number passed OTP verification.
func SaveProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile models.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Println("SaveProfile decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if msg := validate(&profile); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// The phone must have been verified through the OTP flow in this session.
	verified := rdx.Exists("otp_verified:" + userID + ":" + profile.ContactNumber)
	if !verified {
		http.Error(w, "Contact number is not verified", http.StatusForbidden)
		return
	}

	profile.UID = userID
	profile.PhoneVerified = true
	profile.UpdatedAt = time.Now()

	opts := options.Update().SetUpsert(true)
	_, err := db.ProfilesCollection.UpdateOne(ctx,
		bson.M{"uid": userID},
		bson.M{"$set": profile},
		opts,
	)
	if err != nil {
		log.Println("SaveProfile UpdateOne error:", err)
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": profile,
	})
}

func validate(p *models.StudentProfile) string {
	if p.Name == "" {
		return "Name is required"
	}
	if !departments[p.Department] {
		return "Please select a valid department"
	}
	if !sections[p.Section] {
		return "Please select a valid section"
	}
	if !semesters[p.Semester] {
		return "Please select a valid semester"
	}
	if len(p.RollNumber) < 6 {
		return "Please enter your full roll number (min 6 characters)"
	}
	if !contactPattern.MatchString(p.ContactNumber) {
		return "Contact number must be exactly 10 digits"
	}
	return ""
}
