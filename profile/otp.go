package profile

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"munchmate/rdx"
	"munchmate/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	otpTTL      = 10 * time.Minute
	otpResend   = 60 * time.Second
	verifiedTTL = 30 * time.Minute
)

func GenerateOTP(length int) string {
	return utils.GenerateRandomDigitString(length)
}

// SendSMSOTP delivers the code to the given phone number. There is no SMS
// gateway in this deployment, so the code is logged for the operator.
func SendSMSOTP(phone, otp string) error {
	log.Printf("SMS to %s: Your MunchMate verification code is %s", phone, otp)
	return nil
}

// RequestOTPHandler generates a 6-digit code for the caller's phone number
// and stores it with a TTL. Resends are gated to once a minute.
func RequestOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ContactNumber string `json:"contactNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !contactPattern.MatchString(input.ContactNumber) {
		http.Error(w, "Contact number must be exactly 10 digits", http.StatusBadRequest)
		return
	}

	key := "otp:" + userID + ":" + input.ContactNumber

	// Resend gate
	gate, err := rdx.RdxSetNX(key+":gate", "1", otpResend)
	if err != nil {
		log.Println("RequestOTP gate error:", err)
	} else if !gate {
		http.Error(w, "Please wait before requesting another code", http.StatusTooManyRequests)
		return
	}

	otp := GenerateOTP(6)
	if err := rdx.RdxSetWithExpiry(key, otp, otpTTL); err != nil {
		log.Println("RequestOTP store error:", err)
		http.Error(w, "Failed to generate OTP", http.StatusInternalServerError)
		return
	}

	if err := SendSMSOTP(input.ContactNumber, otp); err != nil {
		log.Println("RequestOTP send error:", err)
		http.Error(w, "Failed to send OTP", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message":   "OTP sent",
		"expiresIn": int(otpTTL.Seconds()),
	})
}

// VerifyOTPHandler checks the submitted code and marks the phone number
// verified for a window long enough to finish the profile form.
func VerifyOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ContactNumber string `json:"contactNumber"`
		OTP           string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	key := "otp:" + userID + ":" + input.ContactNumber
	storedOTP, err := rdx.RdxGet(key)
	if err != nil || storedOTP != input.OTP {
		http.Error(w, "Invalid or expired OTP", http.StatusUnauthorized)
		return
	}

	if err := rdx.RdxSetWithExpiry("otp_verified:"+userID+":"+input.ContactNumber, "1", verifiedTTL); err != nil {
		log.Println("VerifyOTP mark error:", err)
		http.Error(w, "Failed to verify", http.StatusInternalServerError)
		return
	}
	rdx.RdxDel(key)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Phone number verified"})
}
