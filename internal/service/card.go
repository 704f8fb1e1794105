package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

// Card implements contact card management.
type Card struct {
	cardStore   model.CardStore
	objectStore model.ObjectStore
	logger      *logger.Logger
}

// NewCard creates a new Card service.
func NewCard(cardStore model.CardStore, objectStore model.ObjectStore, logger *logger.Logger) *Card {
	return &Card{
		cardStore:   cardStore,
		objectStore: objectStore,
		logger:      logger,
	}
}

// CreateCard stores an empty card owned by the user.
func (s *Card) CreateCard(ctx context.Context, userID string) (model.ContactCard, error) {
	card, err := s.cardStore.Create(ctx, model.ContactCard{
		ID:             uuid.New(),
		OwnerID:        userID,
		ContactDetails: []model.ContactDetail{},
	})
	if err != nil {
		return model.ContactCard{}, fmt.Errorf("failed to create card: %w", err)
	}

	return card, nil
}

// SaveCard replaces the editable fields of a card owned by the user.
// Oversized fields are truncated, never rejected.
func (s *Card) SaveCard(ctx context.Context, params model.SaveCardParams) error {
	details := make([]model.ContactDetail, 0, len(params.Data.ContactDetails))
	for _, d := range params.Data.ContactDetails {
		details = append(details, model.ContactDetail{
			Type:  d.Type,
			Value: truncate(d.Value, model.MaxDetailValueLength),
		})
	}

	card := model.ContactCard{
		ID:             params.CardID,
		OwnerID:        params.UserID,
		Name:           truncate(params.Data.Name, model.MaxNameLength),
		Description:    truncate(params.Data.Description, model.MaxDescriptionLength),
		ContactDetails: details,
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	return nil
}

// GetCards returns all cards owned by the user.
func (s *Card) GetCards(ctx context.Context, userID string) ([]model.ContactCard, error) {
	cards, err := s.cardStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by owner id: %w", err)
	}

	return cards, nil
}

// GetCard returns a card and whether the user owns it. Cards are readable by any user.
func (s *Card) GetCard(ctx context.Context, userID string, cardID uuid.UUID) (model.ContactCard, bool, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return model.ContactCard{}, false, fmt.Errorf("failed to get card by id: %w", err)
	}

	return card, card.OwnerID == userID, nil
}

// DeleteCard deletes a card owned by the user together with its image.
func (s *Card) DeleteCard(ctx context.Context, userID string, cardID uuid.UUID) error {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}
	if card.OwnerID != userID {
		return fmt.Errorf("card %s: %w", cardID, model.ErrNotFound)
	}

	if err := s.cardStore.Delete(ctx, cardID, userID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	if card.ImageURL != "" {
		s.deleteImage(ctx, card.ImageURL)
	}

	return nil
}

func (s *Card) deleteImage(ctx context.Context, imageURL string) {
	key, err := s.objectStore.KeyFromURL(imageURL)
	if err != nil {
		s.logger.Error("Card service: failed to derive image key", "image_url", imageURL, "error", err)
		return
	}
	if err := s.objectStore.Delete(ctx, key); err != nil {
		s.logger.Error("Card service: failed to delete image from storage", "key", key, "error", err)
	}
}

// ExportVCard renders a card as a vCard 4.0 document.
func (s *Card) ExportVCard(ctx context.Context, cardID uuid.UUID) ([]byte, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card by id: %w", err)
	}

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(toVCard(card)); err != nil {
		return nil, fmt.Errorf("failed to encode vcard: %w", err)
	}

	return buf.Bytes(), nil
}

func toVCard(card model.ContactCard) vcard.Card {
	vc := vcard.Card{}
	vc.SetValue(vcard.FieldUID, "urn:uuid:"+card.ID.String())
	vc.SetValue(vcard.FieldFormattedName, card.Name)
	vc.SetKind(vcard.KindIndividual)
	if card.Description != "" {
		vc.SetValue(vcard.FieldNote, card.Description)
	}
	if card.ImageURL != "" {
		vc.SetValue(vcard.FieldPhoto, card.ImageURL)
	}
	if !card.UpdatedAt.IsZero() {
		vc.SetValue(vcard.FieldRevision, card.UpdatedAt.UTC().Format("20060102T150405Z"))
	}

	for _, d := range card.ContactDetails {
		if d.Value == "" {
			continue
		}
		vc.AddValue(vcardField(d.Type), d.Value)
	}

	vcard.ToV4(vc)
	return vc
}

func vcardField(detailType string) string {
	switch strings.ToLower(strings.TrimSpace(detailType)) {
	case "phone", "tel", "telephone", "mobile":
		return vcard.FieldTelephone
	case "email", "e-mail", "mail":
		return vcard.FieldEmail
	case "url", "website", "web", "link":
		return vcard.FieldURL
	}

	name := strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '-'
	}, strings.TrimSpace(detailType))
	name = strings.Trim(name, "-")
	if name == "" {
		return "X-CONTACT"
	}

	return "X-" + name
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
