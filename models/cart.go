package models

// CartItem is one unit of a menu item in a user's cart. The cart is an
// ordered multiset: the same id appearing N times means N units.
type CartItem struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Image string  `json:"image,omitempty" bson:"image,omitempty"`
}

// LineItem is a cart item aggregated by id, in first-seen order.
type LineItem struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Subtotal float64 `json:"subtotal" bson:"subtotal"`
}
