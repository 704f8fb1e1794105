package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

type memCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]model.ContactCard
}

func newMemCardStore() *memCardStore {
	return &memCardStore{cards: make(map[uuid.UUID]model.ContactCard)}
}

func (m *memCardStore) Create(_ context.Context, card model.ContactCard) (model.ContactCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	m.cards[card.ID] = card
	return card, nil
}

func (m *memCardStore) Update(_ context.Context, card model.ContactCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.cards[card.ID]
	if !ok || cur.OwnerID != card.OwnerID {
		return model.ErrNotFound
	}
	cur.Name, cur.Description, cur.ContactDetails = card.Name, card.Description, card.ContactDetails
	cur.UpdatedAt = time.Now()
	m.cards[card.ID] = cur
	return nil
}

func (m *memCardStore) GetByID(_ context.Context, id uuid.UUID) (model.ContactCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.cards[id]
	if !ok {
		return model.ContactCard{}, model.ErrNotFound
	}
	return card, nil
}

func (m *memCardStore) GetByOwnerID(_ context.Context, ownerID string) ([]model.ContactCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ContactCard
	for _, c := range m.cards {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCardStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.ContactCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ContactCard
	for _, id := range ids {
		if c, ok := m.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCardStore) Delete(_ context.Context, id uuid.UUID, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.cards[id]
	if !ok || cur.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *memCardStore) SetImageURL(_ context.Context, id uuid.UUID, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.cards[id]
	if !ok {
		return model.ErrNotFound
	}
	cur.ImageURL = imageURL
	m.cards[id] = cur
	return nil
}

func (m *memCardStore) Ping(context.Context) error { return nil }

type memObject struct {
	data        []byte
	contentType string
	public      bool
}

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string]memObject)}
}

func (m *memObjectStore) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *memObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) MakePublic(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return fmt.Errorf("object %s does not exist", key)
	}
	obj.public = true
	m.objects[key] = obj
	return nil
}

func (m *memObjectStore) PublicURL(key string) string {
	return "https://storage.example.com/images/" + key
}

func (m *memObjectStore) KeyFromURL(rawURL string) (string, error) {
	return path.Base(rawURL), nil
}

func (m *memObjectStore) get(key string) (memObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

func imageUpload(userID string, cardID uuid.UUID, data string) model.ImageUpload {
	return model.ImageUpload{
		UserID:      userID,
		CardID:      cardID,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        bytes.NewBufferString(data),
	}
}
