package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

// dbtx is the subset of the pgx pool the repositories use.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ model.CardStore = (*CardRepository)(nil)

type CardRepository struct {
	db     dbtx
	pinger interface{ Ping(context.Context) error }
}

func NewCardRepository(db *Connection) *CardRepository {
	return &CardRepository{
		db:     db,
		pinger: db,
	}
}

const cardColumns = `id, owner_id, name, description, contact_details, image_url, created_at, updated_at`

func (r *CardRepository) Create(ctx context.Context, card model.ContactCard) (model.ContactCard, error) {
	details, err := encodeDetails(card.ContactDetails)
	if err != nil {
		return model.ContactCard{}, err
	}

	query := `
		INSERT INTO contact_cards (id, owner_id, name, description, contact_details, image_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING ` + cardColumns

	return scanCard(r.db.QueryRow(ctx, query,
		card.ID, card.OwnerID, card.Name, card.Description, details, card.ImageURL,
	))
}

// Update replaces name, description and contact details of a card owned by card.OwnerID.
func (r *CardRepository) Update(ctx context.Context, card model.ContactCard) error {
	details, err := encodeDetails(card.ContactDetails)
	if err != nil {
		return err
	}

	const query = `
		UPDATE contact_cards
		SET name = $3, description = $4, contact_details = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`

	cmd, err := r.db.Exec(ctx, query, card.ID, card.OwnerID, card.Name, card.Description, details)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ContactCard, error) {
	query := `SELECT ` + cardColumns + ` FROM contact_cards WHERE id = $1`

	return scanCard(r.db.QueryRow(ctx, query, id))
}

func (r *CardRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]model.ContactCard, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM contact_cards
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

func (r *CardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ContactCard, error) {
	if len(ids) == 0 {
		return []model.ContactCard{}, nil
	}

	textIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		textIDs = append(textIDs, id.String())
	}

	query := `
		SELECT ` + cardColumns + `
		FROM contact_cards
		WHERE id::text = ANY($1)`

	rows, err := r.db.Query(ctx, query, textIDs)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

// Delete removes a card owned by ownerID.
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	const query = `DELETE FROM contact_cards WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	const query = `UPDATE contact_cards SET image_url = NULLIF($2, ''), updated_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, imageURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Ping(ctx context.Context) error {
	return r.pinger.Ping(ctx)
}

func scanCard(row pgx.Row) (model.ContactCard, error) {
	var (
		card     model.ContactCard
		details  []byte
		imageURL *string
	)
	err := row.Scan(
		&card.ID, &card.OwnerID, &card.Name, &card.Description,
		&details, &imageURL, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ContactCard{}, model.ErrNotFound
		}
		return model.ContactCard{}, err
	}

	if imageURL != nil {
		card.ImageURL = *imageURL
	}
	card.ContactDetails, err = decodeDetails(details)
	if err != nil {
		return model.ContactCard{}, err
	}

	return card, nil
}

func collectCards(rows pgx.Rows) ([]model.ContactCard, error) {
	defer rows.Close()

	cards := []model.ContactCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func encodeDetails(details []model.ContactDetail) ([]byte, error) {
	if details == nil {
		details = []model.ContactDetail{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact details: %w", err)
	}
	return b, nil
}

func decodeDetails(b []byte) ([]model.ContactDetail, error) {
	details := []model.ContactDetail{}
	if len(b) == 0 {
		return details, nil
	}
	if err := json.Unmarshal(b, &details); err != nil {
		return nil, fmt.Errorf("failed to decode contact details: %w", err)
	}
	return details, nil
}
