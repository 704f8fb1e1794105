package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

const tracerName = "github.com/dtroode/cardkeeper-server/internal/service"

// Image replaces card images.
type Image struct {
	cardStore   model.CardStore
	objectStore model.ObjectStore
	logger      *logger.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewImage creates a new Image service.
func NewImage(cardStore model.CardStore, objectStore model.ObjectStore, logger *logger.Logger) *Image {
	return &Image{
		cardStore:   cardStore,
		objectStore: objectStore,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
	}
}

// ReplaceImage stores a new image for a card owned by the uploader and points the card at it.
//
// The previous image is deleted before the new one is written. Failing to delete it
// does not stop the upload and is reported through the Cleanup outcome. When the card
// update fails after the write, the new blob stays in storage unreferenced.
func (s *Image) ReplaceImage(ctx context.Context, upload model.ImageUpload) (model.ImageReplacement, error) {
	ctx, span := s.tracer.Start(ctx, "Image.ReplaceImage", trace.WithAttributes(
		attribute.String("card.id", upload.CardID.String()),
		attribute.String("user.id", upload.UserID),
		attribute.Int64("image.size", upload.Size),
	))
	defer span.End()

	result, err := s.replaceImage(ctx, upload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.ImageReplacement{}, err
	}

	span.SetAttributes(attribute.String("image.cleanup", result.Cleanup.String()))
	return result, nil
}

func (s *Image) replaceImage(ctx context.Context, upload model.ImageUpload) (model.ImageReplacement, error) {
	if err := validateImage(upload); err != nil {
		return model.ImageReplacement{}, err
	}

	card, err := s.cardStore.GetByID(ctx, upload.CardID)
	if err != nil {
		return model.ImageReplacement{}, fmt.Errorf("failed to get card: %w", err)
	}
	if card.OwnerID != upload.UserID {
		return model.ImageReplacement{}, fmt.Errorf("card %s: %w", upload.CardID, model.ErrNotFound)
	}

	result := model.ImageReplacement{Cleanup: model.CleanupNone}
	if card.ImageURL != "" {
		result.Cleanup, result.CleanupErr = s.cleanup(ctx, card.ImageURL)
	}

	key := imageKey(upload.UserID, upload.CardID.String(), s.now())
	if err := s.write(ctx, key, upload); err != nil {
		return model.ImageReplacement{}, err
	}

	url := s.objectStore.PublicURL(key)
	if err := s.persist(ctx, upload, url); err != nil {
		s.logger.Error("Image service: card not updated, uploaded image is unreferenced",
			"card_id", upload.CardID,
			"key", key,
			"error", err)
		return model.ImageReplacement{}, err
	}

	result.URL = url
	result.Key = key

	s.logger.Info("Image service: image replaced",
		"card_id", upload.CardID,
		"key", key,
		"cleanup", result.Cleanup.String())

	return result, nil
}

// imageKey names the blob. Keys are a single path segment so they survive the round trip through a public URL.
func imageKey(userID, cardID string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.jpg", strings.ReplaceAll(userID, "/", "_"), cardID, at.UnixMilli())
}

func validateImage(upload model.ImageUpload) error {
	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return fmt.Errorf("content type %q is not an image: %w", upload.ContentType, model.ErrInvalidInput)
	}
	if upload.Data == nil || upload.Size <= 0 {
		return fmt.Errorf("image is empty: %w", model.ErrInvalidInput)
	}
	if upload.Size > model.MaxImageSize {
		return fmt.Errorf("image exceeds %d bytes: %w", model.MaxImageSize, model.ErrInvalidInput)
	}
	return nil
}

func (s *Image) cleanup(ctx context.Context, imageURL string) (model.CleanupOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "Image.cleanup")
	defer span.End()

	key, err := s.objectStore.KeyFromURL(imageURL)
	if err == nil {
		err = s.objectStore.Delete(ctx, key)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("Image service: failed to delete previous image",
			"image_url", imageURL,
			"error", err)
		return model.CleanupFailed, err
	}

	return model.CleanupDeleted, nil
}

func (s *Image) write(ctx context.Context, key string, upload model.ImageUpload) error {
	ctx, span := s.tracer.Start(ctx, "Image.write", trace.WithAttributes(attribute.String("image.key", key)))
	defer span.End()

	if err := s.objectStore.Upload(ctx, key, upload.Data, upload.Size, model.StoredImageContentType); err != nil {
		span.RecordError(err)
		return errors.Join(model.ErrUploadFailed, err)
	}
	if err := s.objectStore.MakePublic(ctx, key); err != nil {
		span.RecordError(err)
		return errors.Join(model.ErrUploadFailed, fmt.Errorf("failed to make image public: %w", err))
	}

	return nil
}

func (s *Image) persist(ctx context.Context, upload model.ImageUpload, url string) error {
	ctx, span := s.tracer.Start(ctx, "Image.persist")
	defer span.End()

	if err := s.cardStore.SetImageURL(ctx, upload.CardID, url); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set card image url: %w", err)
	}

	return nil
}
