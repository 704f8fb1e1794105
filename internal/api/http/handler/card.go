package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

// CardService defines business operations for contact cards.
type CardService interface {
	CreateCard(ctx context.Context, userID string) (model.ContactCard, error)
	SaveCard(ctx context.Context, params model.SaveCardParams) error
	GetCards(ctx context.Context, userID string) ([]model.ContactCard, error)
	GetCard(ctx context.Context, userID string, cardID uuid.UUID) (model.ContactCard, bool, error)
	DeleteCard(ctx context.Context, userID string, cardID uuid.UUID) error
	ExportVCard(ctx context.Context, cardID uuid.UUID) ([]byte, error)
}

// Card handles contact card endpoints.
type Card struct {
	cardService    CardService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCard creates a new Card handler.
func NewCard(cardService CardService, contextManager model.ContextManager, logger *logger.Logger) *Card {
	return &Card{
		cardService:    cardService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register adds card operations to api.
func (h *Card) Register(api huma.API) {
	tags := opTags("cards")
	huma.Post(api, "/create-card", h.create, tags, opErrors(http.StatusForbidden, http.StatusInternalServerError))
	huma.Post(api, "/save-contact-card", h.save, tags, opErrors(http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError))
	huma.Get(api, "/get-contact-cards", h.list, tags, opErrors(http.StatusForbidden, http.StatusInternalServerError))
	huma.Get(api, "/get-card/{cardId}", h.get, tags, opErrors(http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError))
	huma.Get(api, "/get-card/{cardId}/vcard", h.vcard, tags, opErrors(http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError))
	huma.Delete(api, "/delete-card/{cardId}", h.delete, tags, opErrors(http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError))
}

type CreateCardOutput struct {
	Body struct {
		Success bool   `json:"success"`
		ID      string `json:"_id" format:"uuid"`
	}
}

func (h *Card) create(ctx context.Context, _ *struct{}) (*CreateCardOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	card, err := h.cardService.CreateCard(ctx, userID)
	if err != nil {
		h.logger.Error("Card handler: create card failed", "user_id", userID, "error", err.Error())
		return nil, handleError(err)
	}

	out := &CreateCardOutput{}
	out.Body.Success = true
	out.Body.ID = card.ID.String()
	return out, nil
}

// ContactDataModel is the editable part of a card. Oversized values are truncated on save.
type ContactDataModel struct {
	_              struct{}      `json:"-" additionalProperties:"true"`
	Name           string        `json:"name,omitempty" example:"Ada Lovelace"`
	Description    string        `json:"description,omitempty"`
	ContactDetails []DetailInput `json:"contactDetails,omitempty"`
}

type SaveCardInput struct {
	Body struct {
		_           struct{}         `json:"-" additionalProperties:"true"`
		CardID      string           `json:"cardId" doc:"ID of the card to save"`
		ContactData ContactDataModel `json:"contactData"`
	}
}

func (h *Card) save(ctx context.Context, input *SaveCardInput) (*MessageOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	cardID, err := parseCardID(input.Body.CardID)
	if err != nil {
		return nil, handleError(err)
	}

	data := input.Body.ContactData
	details := make([]model.ContactDetail, 0, len(data.ContactDetails))
	for _, d := range data.ContactDetails {
		details = append(details, model.ContactDetail{Type: d.Type, Value: d.Value})
	}

	err = h.cardService.SaveCard(ctx, model.SaveCardParams{
		UserID: userID,
		CardID: cardID,
		Data: model.ContactData{
			Name:           data.Name,
			Description:    data.Description,
			ContactDetails: details,
		},
	})
	if err != nil {
		h.logger.Error("Card handler: save card failed", "user_id", userID, "card_id", cardID, "error", err.Error())
		return nil, handleError(err)
	}

	return message("contact card saved"), nil
}

type ListCardsOutput struct {
	Body struct {
		Success bool        `json:"success"`
		Cards   []CardModel `json:"cards"`
	}
}

func (h *Card) list(ctx context.Context, _ *struct{}) (*ListCardsOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	cards, err := h.cardService.GetCards(ctx, userID)
	if err != nil {
		h.logger.Error("Card handler: list cards failed", "user_id", userID, "error", err.Error())
		return nil, handleError(err)
	}

	out := &ListCardsOutput{}
	out.Body.Success = true
	out.Body.Cards = toCardModels(cards)
	return out, nil
}

type CardIDInput struct {
	CardID string `path:"cardId" doc:"ID of the card"`
}

type GetCardOutput struct {
	Body struct {
		Success bool      `json:"success"`
		Card    CardModel `json:"card"`
		IsOwner bool      `json:"isOwner"`
	}
}

func (h *Card) get(ctx context.Context, input *CardIDInput) (*GetCardOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	cardID, err := parseCardID(input.CardID)
	if err != nil {
		return nil, handleError(err)
	}

	card, isOwner, err := h.cardService.GetCard(ctx, userID, cardID)
	if err != nil {
		h.logger.Error("Card handler: get card failed", "card_id", cardID, "error", err.Error())
		return nil, handleError(err)
	}

	out := &GetCardOutput{}
	out.Body.Success = true
	out.Body.Card = toCardModel(card)
	out.Body.IsOwner = isOwner
	return out, nil
}

type VCardOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *Card) vcard(ctx context.Context, input *CardIDInput) (*VCardOutput, error) {
	if _, err := userIDFromContext(ctx, h.contextManager); err != nil {
		return nil, err
	}

	cardID, err := parseCardID(input.CardID)
	if err != nil {
		return nil, handleError(err)
	}

	data, err := h.cardService.ExportVCard(ctx, cardID)
	if err != nil {
		h.logger.Error("Card handler: vcard export failed", "card_id", cardID, "error", err.Error())
		return nil, handleError(err)
	}

	return &VCardOutput{
		ContentType:        "text/vcard; charset=utf-8",
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s.vcf"`, cardID),
		Body:               data,
	}, nil
}

func (h *Card) delete(ctx context.Context, input *CardIDInput) (*MessageOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	cardID, err := parseCardID(input.CardID)
	if err != nil {
		return nil, handleError(err)
	}

	if err := h.cardService.DeleteCard(ctx, userID, cardID); err != nil {
		h.logger.Error("Card handler: delete card failed", "user_id", userID, "card_id", cardID, "error", err.Error())
		return nil, handleError(err)
	}

	return message("contact card deleted"), nil
}
