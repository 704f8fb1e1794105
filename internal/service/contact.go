package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

// Contact manages the per-user list of saved contact cards.
type Contact struct {
	contactStore model.ContactStore
	cardStore    model.CardStore
	logger       *logger.Logger
}

// NewContact creates a new Contact service.
func NewContact(contactStore model.ContactStore, cardStore model.CardStore, logger *logger.Logger) *Contact {
	return &Contact{
		contactStore: contactStore,
		cardStore:    cardStore,
		logger:       logger,
	}
}

// AddContact appends a card id to the user's contacts. The id is not checked against existing cards.
func (s *Contact) AddContact(ctx context.Context, userID string, contactID string) error {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return fmt.Errorf("contact id is empty: %w", model.ErrInvalidInput)
	}

	if err := s.contactStore.Add(ctx, userID, contactID); err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}

	return nil
}

// GetContacts resolves the user's contact ids to cards, in the order they were added.
// Ids that no longer point to a card are skipped.
func (s *Contact) GetContacts(ctx context.Context, userID string) ([]model.ContactCard, error) {
	contactIDs, err := s.contactStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact ids: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(contactIDs))
	for _, raw := range contactIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.logger.Debug("Contact service: skipping malformed contact id", "user_id", userID, "contact_id", raw)
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return []model.ContactCard{}, nil
	}

	cards, err := s.cardStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact cards: %w", err)
	}

	byID := make(map[uuid.UUID]model.ContactCard, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	contacts := make([]model.ContactCard, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			contacts = append(contacts, c)
		}
	}

	return contacts, nil
}
