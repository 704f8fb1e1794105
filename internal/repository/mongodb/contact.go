package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

// contactListDocument holds one user's contact ids; _id is the owner id.
type contactListDocument struct {
	OwnerID    string   `bson:"_id"`
	ContactIDs []string `bson:"contactIds"`
}

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(conn *Connection) *ContactRepository {
	return &ContactRepository{
		coll: conn.db.Collection(contactsCollection),
	}
}

func (r *ContactRepository) Add(ctx context.Context, ownerID string, contactID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: ownerID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "contactIds", Value: contactID}}}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *ContactRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]string, error) {
	var doc contactListDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: ownerID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		return nil, err
	}

	if doc.ContactIDs == nil {
		return []string{}, nil
	}
	return doc.ContactIDs, nil
}
