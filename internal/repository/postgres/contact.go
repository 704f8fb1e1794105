package postgres

import (
	"context"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

type ContactRepository struct {
	db dbtx
}

func NewContactRepository(db *Connection) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

func (r *ContactRepository) Add(ctx context.Context, ownerID string, contactID string) error {
	const query = `INSERT INTO contact_associations (owner_id, contact_card_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, ownerID, contactID)
	return err
}

// GetByOwnerID returns contact ids in the order they were added.
func (r *ContactRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]string, error) {
	const query = `SELECT contact_card_id FROM contact_associations WHERE owner_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
