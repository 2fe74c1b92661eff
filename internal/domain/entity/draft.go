package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/garzaro/uniformes-bff/internal/domain/enum"
	"github.com/garzaro/uniformes-bff/pkg/money"
)

// Draft is an in-progress sale or encargo held only in session state.
// Exactly one of Venta/Encargo is non-nil, matching Kind; use NewDraft to
// keep that invariant.
type Draft struct {
	ID         uuid.UUID       `json:"id"`
	Kind       enum.DraftKind  `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	SchoolID   string          `json:"school_id,omitempty"`
	ClientID   string          `json:"client_id,omitempty"`
	ClientName string          `json:"client_name,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Items      []LineItem      `json:"items"`
	Total      int64           `json:"total"`
	Venta      *VentaDetails   `json:"venta,omitempty"`
	Encargo    *EncargoDetails `json:"encargo,omitempty"`
}

// VentaDetails carries the sale-only fields of a draft.
type VentaDetails struct {
	Historical     bool       `json:"historical"`
	HistoricalDate *time.Time `json:"historical_date,omitempty"`
	Payments       []Payment  `json:"payments"`
}

// EncargoDetails carries the custom-order-only fields of a draft.
type EncargoDetails struct {
	ClientEmail   string             `json:"client_email,omitempty"`
	DeliveryDate  *time.Time         `json:"delivery_date,omitempty"`
	AdvanceAmount int64              `json:"advance_amount"`
	AdvanceMethod enum.PaymentMethod `json:"advance_method,omitempty"`
	ActiveTab     enum.IntakeTab     `json:"active_tab"`
}

// Payment is a single payment recorded against a sale draft.
type Payment struct {
	ID     uuid.UUID          `json:"id"`
	Amount int64              `json:"amount"`
	Method enum.PaymentMethod `json:"method"`
}

// LineItem is one line of a draft. TempID is unique within the draft;
// ProductID is set only for catalog-sourced items.
type LineItem struct {
	TempID    uuid.UUID      `json:"temp_id"`
	ProductID string         `json:"product_id,omitempty"`
	Name      string         `json:"name"`
	Size      string         `json:"size,omitempty"`
	Quantity  int            `json:"quantity"`
	UnitPrice int64          `json:"unit_price"`
	Global    bool           `json:"global,omitempty"`
	SchoolID  string         `json:"school_id,omitempty"`
	Custom    *CustomGarment `json:"custom,omitempty"`
}

// CustomGarment holds the made-to-order fields of a line item.
type CustomGarment struct {
	GarmentTypeID string             `json:"garment_type_id,omitempty"`
	Measurements  map[string]float64 `json:"measurements,omitempty"`
	Embroidery    string             `json:"embroidery,omitempty"`
	Color         string             `json:"color,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	PriceDelta    int64              `json:"price_delta,omitempty"`
}

// NewDraft creates an empty draft of the given kind with a fresh identity.
func NewDraft(kind enum.DraftKind) *Draft {
	now := time.Now()
	d := &Draft{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     []LineItem{},
	}
	switch kind {
	case enum.DraftKindVenta:
		d.Venta = &VentaDetails{Payments: []Payment{}}
	case enum.DraftKindEncargo:
		d.Encargo = &EncargoDetails{ActiveTab: enum.IntakeTabCatalogo}
	}
	return d
}

// Subtotal returns quantity times the effective unit price, including the
// custom-garment delta when present.
func (li LineItem) Subtotal() int64 {
	price := li.UnitPrice
	if li.Custom != nil {
		price += li.Custom.PriceDelta
	}
	return int64(li.Quantity) * price
}

// ItemCount returns the total quantity across all lines.
func (d *Draft) ItemCount() int {
	count := 0
	for _, li := range d.Items {
		count += li.Quantity
	}
	return count
}

// RecomputeTotal refreshes the running total from the current lines.
func (d *Draft) RecomputeTotal() {
	var total int64
	for _, li := range d.Items {
		total += li.Subtotal()
	}
	d.Total = total
}

// Label renders the operator-facing summary of a draft, e.g.
// "Venta - 2 items - $50.000".
func (d *Draft) Label() string {
	return d.Kind.Display() + " - " + money.FormatCount(d.ItemCount()) + " - " + money.FormatCLP(d.Total)
}

// Clone returns a deep copy of the draft so callers cannot mutate store
// state through returned pointers.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Items = make([]LineItem, len(d.Items))
	for i, li := range d.Items {
		out.Items[i] = li
		if li.Custom != nil {
			custom := *li.Custom
			if li.Custom.Measurements != nil {
				custom.Measurements = make(map[string]float64, len(li.Custom.Measurements))
				for k, v := range li.Custom.Measurements {
					custom.Measurements[k] = v
				}
			}
			out.Items[i].Custom = &custom
		}
	}
	if d.Venta != nil {
		venta := *d.Venta
		venta.Payments = append([]Payment(nil), d.Venta.Payments...)
		if d.Venta.HistoricalDate != nil {
			date := *d.Venta.HistoricalDate
			venta.HistoricalDate = &date
		}
		out.Venta = &venta
	}
	if d.Encargo != nil {
		encargo := *d.Encargo
		if d.Encargo.DeliveryDate != nil {
			date := *d.Encargo.DeliveryDate
			encargo.DeliveryDate = &date
		}
		out.Encargo = &encargo
	}
	return &out
}
