package entity

// CartItem is one line of the storefront cart. Lines are deduplicated by
// the (product, school) pair.
type CartItem struct {
	ProductID  string `json:"product_id"`
	SchoolID   string `json:"school_id"`
	Name       string `json:"name"`
	Size       string `json:"size,omitempty"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	SchoolName string `json:"school_name,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// Key is the de-duplication key for a cart line.
func (ci CartItem) Key() string {
	return ci.ProductID + "|" + ci.SchoolID
}

// Subtotal returns quantity times unit price for the line.
func (ci CartItem) Subtotal() int64 {
	return int64(ci.Quantity) * ci.UnitPrice
}
