package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateDraftRequest opens a new venta or encargo draft.
type CreateDraftRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=venta encargo"`
	SchoolID   string `json:"school_id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name" binding:"omitempty,max=255"`
	Notes      string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateDraftRequest merges a partial update into an open draft. Nil
// fields are left untouched; Items replaces the whole line list.
type UpdateDraftRequest struct {
	SchoolID   *string                `json:"school_id"`
	ClientID   *string                `json:"client_id"`
	ClientName *string                `json:"client_name" binding:"omitempty,max=255"`
	Notes      *string                `json:"notes" binding:"omitempty,max=2000"`
	Items      *[]DraftLineRequest    `json:"items"`
	Venta      *VentaChangesRequest   `json:"venta"`
	Encargo    *EncargoChangesRequest `json:"encargo"`
}

// DraftLineRequest is one line in a draft update.
type DraftLineRequest struct {
	TempID    uuid.UUID             `json:"temp_id"`
	ProductID string                `json:"product_id"`
	Name      string                `json:"name" binding:"required,max=255"`
	Size      string                `json:"size" binding:"omitempty,max=50"`
	Quantity  int                   `json:"quantity" binding:"required,min=1"`
	UnitPrice int64                 `json:"unit_price" binding:"min=0"`
	Global    bool                  `json:"global"`
	SchoolID  string                `json:"school_id"`
	Custom    *CustomGarmentRequest `json:"custom"`
}

// CustomGarmentRequest describes a made-to-measure garment line.
type CustomGarmentRequest struct {
	GarmentTypeID string             `json:"garment_type_id" binding:"required"`
	Measurements  map[string]float64 `json:"measurements"`
	Embroidery    string             `json:"embroidery" binding:"omitempty,max=255"`
	Color         string             `json:"color" binding:"omitempty,max=100"`
	Notes         string             `json:"notes" binding:"omitempty,max=1000"`
	PriceDelta    int64              `json:"price_delta"`
}

// VentaChangesRequest is the sale-specific part of a draft update.
type VentaChangesRequest struct {
	Historical     *bool             `json:"historical"`
	HistoricalDate *time.Time        `json:"historical_date"`
	Payments       *[]PaymentRequest `json:"payments"`
}

// PaymentRequest is one payment split of a venta.
type PaymentRequest struct {
	ID     uuid.UUID `json:"id"`
	Amount int64     `json:"amount" binding:"required,min=1"`
	Method string    `json:"method" binding:"required,oneof=efectivo transferencia tarjeta otro"`
}

// EncargoChangesRequest is the encargo-specific part of a draft update.
type EncargoChangesRequest struct {
	ClientEmail   *string    `json:"client_email" binding:"omitempty,email"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	AdvanceAmount *int64     `json:"advance_amount" binding:"omitempty,min=0"`
	AdvanceMethod *string    `json:"advance_method" binding:"omitempty,oneof=efectivo transferencia tarjeta otro"`
	ActiveTab     *string    `json:"active_tab" binding:"omitempty,oneof=catalogo prenda medidas"`
}

// SetActiveDraftRequest moves or clears the active draft pointer. A null
// id clears the pointer.
type SetActiveDraftRequest struct {
	ID *uuid.UUID `json:"id"`
}
