package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

const imageFormField = "image"

// ImageService replaces card images.
type ImageService interface {
	ReplaceImage(ctx context.Context, upload model.ImageUpload) (model.ImageReplacement, error)
}

// Image handles card image uploads.
type Image struct {
	imageService   ImageService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewImage creates a new Image handler.
func NewImage(imageService ImageService, contextManager model.ContextManager, logger *logger.Logger) *Image {
	return &Image{
		imageService:   imageService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register adds the upload operation to api.
func (h *Image) Register(api huma.API) {
	huma.Post(api, "/upload-image", h.upload,
		opTags("images"),
		opErrors(http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError),
		func(o *huma.Operation) { o.MaxBodyBytes = model.MaxImageSize + 1<<20 },
	)
}

type UploadImageInput struct {
	CardID  string `query:"cardId" doc:"ID of the card, if not sent as a form field"`
	RawBody multipart.Form
}

type UploadImageOutput struct {
	Body struct {
		Success  bool   `json:"success"`
		ImageURL string `json:"imageUrl" format:"uri"`
	}
}

func (h *Image) upload(ctx context.Context, input *UploadImageInput) (*UploadImageOutput, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	files := input.RawBody.File[imageFormField]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest("no image file provided")
	}
	fileHeader := files[0]

	rawCardID := input.CardID
	if values := input.RawBody.Value["cardId"]; len(values) > 0 && values[0] != "" {
		rawCardID = values[0]
	}
	if rawCardID == "" {
		return nil, huma.Error400BadRequest("cardId is required")
	}
	cardID, err := parseCardID(rawCardID)
	if err != nil {
		return nil, handleError(err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Image handler: failed to open uploaded file", "error", err.Error())
		return nil, huma.Error400BadRequest("failed to read image file")
	}
	defer file.Close()

	res, err := h.imageService.ReplaceImage(ctx, model.ImageUpload{
		UserID:      userID,
		CardID:      cardID,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
	})
	if err != nil {
		h.logger.Error("Image handler: image replacement failed",
			"user_id", userID,
			"card_id", cardID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := &UploadImageOutput{}
	out.Body.Success = true
	out.Body.ImageURL = res.URL
	return out, nil
}
