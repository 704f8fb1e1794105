package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opTags(tags ...string) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Tags = tags }
}

func userIDFromContext(ctx context.Context, contextManager model.ContextManager) (string, error) {
	userID, ok := contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return "", huma.Error403Forbidden("unauthorized")
	}
	return userID, nil
}

// Malformed ids cannot name an existing card.
func parseCardID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("card id %q: %w", raw, model.ErrNotFound)
	}
	return id, nil
}

// MessageBody is returned by operations that only report success.
type MessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageOutput struct {
	Body MessageBody
}

func message(msg string) *MessageOutput {
	return &MessageOutput{Body: MessageBody{Success: true, Message: msg}}
}

// CardModel is the wire form of a contact card.
type CardModel struct {
	ID             string        `json:"_id" format:"uuid" readOnly:"true"`
	OwnerID        string        `json:"ownerId" readOnly:"true"`
	Name           string        `json:"name" maxLength:"500"`
	Description    string        `json:"description" maxLength:"3000"`
	ContactDetails []DetailModel `json:"contactDetails"`
	ImageURL       string        `json:"imageUrl,omitempty" format:"uri"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// DetailModel is a single typed card entry.
type DetailModel struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	Type  string   `json:"type" example:"email"`
	Value string   `json:"value" example:"ada@example.com"`
}

// DetailInput is a card entry as sent on save. Both fields may be omitted.
type DetailInput struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	Type  string   `json:"type,omitempty" example:"email"`
	Value string   `json:"value,omitempty" example:"ada@example.com"`
}

func toCardModel(card model.ContactCard) CardModel {
	details := make([]DetailModel, 0, len(card.ContactDetails))
	for _, d := range card.ContactDetails {
		details = append(details, DetailModel{Type: d.Type, Value: d.Value})
	}

	return CardModel{
		ID:             card.ID.String(),
		OwnerID:        card.OwnerID,
		Name:           card.Name,
		Description:    card.Description,
		ContactDetails: details,
		ImageURL:       card.ImageURL,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

func toCardModels(cards []model.ContactCard) []CardModel {
	out := make([]CardModel, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardModel(c))
	}
	return out
}
