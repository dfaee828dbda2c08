package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"refreshexp" bson:"refreshexp"`
}

// StudentProfile holds the checkout-facing profile details collected from a
// signed-in student. Contact fields are only trusted once PhoneVerified is set.
type StudentProfile struct {
	UID           string    `json:"uid" bson:"uid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	ContactNumber string    `json:"contactNumber,omitempty" bson:"contactNumber,omitempty"`
	RollNumber    string    `json:"rollNumber,omitempty" bson:"rollNumber,omitempty"`
	Department    string    `json:"department,omitempty" bson:"department,omitempty"`
	Course        string    `json:"course,omitempty" bson:"course,omitempty"`
	Section       string    `json:"section,omitempty" bson:"section,omitempty"`
	Semester      string    `json:"semester,omitempty" bson:"semester,omitempty"`
	PhoneVerified bool      `json:"phoneVerified" bson:"phoneVerified"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
