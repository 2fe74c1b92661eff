package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store keys under which session state is persisted. Changing a key or the
// shape of its payload requires a migration; there is no version field.
const (
	StoreKeyCart           = "cart"
	StoreKeyDrafts         = "drafts"
	StoreKeySelectedSchool = "selected_school"
)

// SessionState is one persisted snapshot slot: the JSON payload a store
// opted to keep across reloads, keyed by (session, store).
type SessionState struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionKey string    `gorm:"size:255;not null;uniqueIndex:idx_session_store" json:"session_key"`
	StoreKey   string    `gorm:"size:64;not null;uniqueIndex:idx_session_store" json:"store_key"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new row
func (s *SessionState) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionState model
func (SessionState) TableName() string {
	return "session_states"
}

// CartSnapshot is the serializable form of the cart store. Only the lines
// are persisted; totals are recomputed on restore.
type CartSnapshot struct {
	Items []CartItem `json:"items"`
}

// DraftsSnapshot is the serializable form of the draft store.
type DraftsSnapshot struct {
	Drafts   []Draft    `json:"drafts"`
	ActiveID *uuid.UUID `json:"active_id,omitempty"`
}

// SchoolSnapshot is the serializable form of the school selection store.
// The available-schools list is deliberately not part of it: it is
// refetched each session so stale access grants never survive a reload.
type SchoolSnapshot struct {
	Selected *School `json:"selected,omitempty"`
}
