package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

var _ model.CardStore = (*CardRepository)(nil)

// cardDocument is the stored shape of a card; _id is the card uuid in text form.
type cardDocument struct {
	ID             string                `bson:"_id"`
	OwnerID        string                `bson:"ownerId"`
	Name           string                `bson:"name"`
	Description    string                `bson:"description"`
	ContactDetails []model.ContactDetail `bson:"contactDetails"`
	ImageURL       string                `bson:"imageUrl,omitempty"`
	CreatedAt      time.Time             `bson:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt"`
}

type CardRepository struct {
	conn *Connection
	coll *mongo.Collection
	now  func() time.Time
}

func NewCardRepository(conn *Connection) *CardRepository {
	return &CardRepository{
		conn: conn,
		coll: conn.db.Collection(cardsCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *CardRepository) Create(ctx context.Context, card model.ContactCard) (model.ContactCard, error) {
	now := r.now()
	card.CreatedAt, card.UpdatedAt = now, now

	doc := toDocument(card)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return model.ContactCard{}, err
	}

	return fromDocument(doc)
}

// Update replaces name, description and contact details of a card owned by card.OwnerID.
func (r *CardRepository) Update(ctx context.Context, card model.ContactCard) error {
	details := card.ContactDetails
	if details == nil {
		details = []model.ContactDetail{}
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: card.ID.String()}, {Key: "ownerId", Value: card.OwnerID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: card.Name},
			{Key: "description", Value: card.Description},
			{Key: "contactDetails", Value: details},
			{Key: "updatedAt", Value: r.now()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ContactCard, error) {
	var doc cardDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.ContactCard{}, model.ErrNotFound
		}
		return model.ContactCard{}, err
	}

	return fromDocument(doc)
}

func (r *CardRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]model.ContactCard, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.D{{Key: "ownerId", Value: ownerID}}, opts)
}

func (r *CardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ContactCard, error) {
	if len(ids) == 0 {
		return []model.ContactCard{}, nil
	}

	textIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		textIDs = append(textIDs, id.String())
	}

	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: textIDs}}}}, options.Find())
}

// Delete removes a card owned by ownerID.
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "ownerId", Value: ownerID}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "imageUrl", Value: imageURL}, {Key: "updatedAt", Value: r.now()}}},
	}
	if imageURL == "" {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "imageUrl", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now()}}},
		}
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func (r *CardRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]model.ContactCard, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []cardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	cards := make([]model.ContactCard, 0, len(docs))
	for _, doc := range docs {
		card, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func toDocument(card model.ContactCard) cardDocument {
	details := card.ContactDetails
	if details == nil {
		details = []model.ContactDetail{}
	}

	return cardDocument{
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

func fromDocument(doc cardDocument) (model.ContactCard, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.ContactCard{}, fmt.Errorf("failed to parse card id %q: %w", doc.ID, err)
	}

	details := doc.ContactDetails
	if details == nil {
		details = []model.ContactDetail{}
	}

	return model.ContactCard{
		ID:             id,
		OwnerID:        doc.OwnerID,
		Name:           doc.Name,
		Description:    doc.Description,
		ContactDetails: details,
		ImageURL:       doc.ImageURL,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}
