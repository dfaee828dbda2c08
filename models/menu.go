package models

import "time"

type MenuItem struct {
	MenuID    string    `json:"id" bson:"menuid"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Category  string    `json:"category" bson:"category"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Stock     int       `json:"stock" bson:"stock"`
	Available bool      `json:"available" bson:"available"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
