package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

// ContactService defines operations on a user's saved contacts.
type ContactService interface {
	AddContact(ctx context.Context, userID string, contactID string) error
	GetContacts(ctx context.Context, userID string) ([]model.ContactCard, error)
}

// Contact handles contact list endpoints.
type Contact struct {
	contactService ContactService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(contactService ContactService, contextManager model.ContextManager, logger *logger.Logger) *Contact {
	return &Contact{
		contactService: contactService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register adds contact operations to api.
func (h *Contact) Register(api huma.API) {
	tags := opTags("contacts")
	huma.Post(api, "/add-contact", h.add, tags, opErrors(http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError))
	huma.Get(api, "/get-user-contacts", h.list, tags, opErrors(http.StatusForbidden, http.StatusInternalServerError))
}

type AddContactInput struct {
	Body struct {
		_         struct{} `json:"-" additionalProperties:"true"`
		ContactID string   `json:"contactId" minLength:"1" doc:"ID of the card to add"`
	}
}

func (h *Contact) add(ctx context.Context, input *AddContactInput) (*MessageOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	if err := h.contactService.AddContact(ctx, userID, input.Body.ContactID); err != nil {
		h.logger.Error("Contact handler: add contact failed", "user_id", userID, "error", err.Error())
		return nil, handleError(err)
	}

	return message("contact added"), nil
}

type ListContactsOutput struct {
	Body struct {
		Success  bool        `json:"success"`
		Contacts []CardModel `json:"contacts"`
	}
}

func (h *Contact) list(ctx context.Context, _ *struct{}) (*ListContactsOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	contacts, err := h.contactService.GetContacts(ctx, userID)
	if err != nil {
		h.logger.Error("Contact handler: list contacts failed", "user_id", userID, "error", err.Error())
		return nil, handleError(err)
	}

	out := &ListContactsOutput{}
	out.Body.Success = true
	out.Body.Contacts = toCardModels(contacts)
	return out, nil
}
