package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Field caps applied when a card is saved.
const (
	MaxNameLength        = 500
	MaxDescriptionLength = 3000
	MaxDetailValueLength = 500
)

// CardStore defines persistence operations for contact cards.
type CardStore interface {
	Create(ctx context.Context, card ContactCard) (ContactCard, error)
	Update(ctx context.Context, card ContactCard) error
	GetByID(ctx context.Context, id uuid.UUID) (ContactCard, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]ContactCard, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]ContactCard, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
	Ping(ctx context.Context) error
}

// ContactCard is a user-owned digital business card.
type ContactCard struct {
	ID             uuid.UUID       `json:"_id"`
	OwnerID        string          `json:"ownerId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ContactDetails []ContactDetail `json:"contactDetails"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ContactDetail is a single typed entry of a card, e.g. {phone, +1 555 0100}.
type ContactDetail struct {
	Type  string `json:"type" bson:"type"`
	Value string `json:"value" bson:"value"`
}

// ContactData carries the editable part of a card.
type ContactData struct {
	Name           string
	Description    string
	ContactDetails []ContactDetail
}

// SaveCardParams contains parameters to save a card.
type SaveCardParams struct {
	UserID string
	CardID uuid.UUID
	Data   ContactData
}
