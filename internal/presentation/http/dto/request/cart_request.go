package request

// AddCartItemRequest adds a line to the storefront cart. An existing
// (product, school) line has its quantity incremented instead.
type AddCartItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	SchoolID   string `json:"school_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=255"`
	Size       string `json:"size" binding:"omitempty,max=50"`
	UnitPrice  int64  `json:"unit_price" binding:"min=0"`
	Quantity   int    `json:"quantity"`
	SchoolName string `json:"school_name" binding:"omitempty,max=255"`
	ImageURL   string `json:"image_url" binding:"omitempty,max=2048"`
}

// UpdateCartItemRequest sets the quantity of a cart line. Zero removes
// the line.
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	SchoolID  string `json:"school_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0"`
}
