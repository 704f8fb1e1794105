package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cm "github.com/dtroode/cardkeeper-server/internal/api/http/context"
	"github.com/dtroode/cardkeeper-server/internal/mocks"
	"github.com/dtroode/cardkeeper-server/internal/model"
	"github.com/dtroode/cardkeeper-server/internal/testutil"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type routerDeps struct {
	cards    *mocks.CardService
	contacts *mocks.ContactService
	images   *mocks.ImageService
	verifier *mocks.IdentityVerifier
}

func newTestHandler(t *testing.T, pingErr error) (http.Handler, routerDeps) {
	t.Helper()

	deps := routerDeps{
		cards:    mocks.NewCardService(t),
		contacts: mocks.NewContactService(t),
		images:   mocks.NewImageService(t),
		verifier: mocks.NewIdentityVerifier(t),
	}

	r := New("cardkeeper", "test",
		Services{Card: deps.cards, Contact: deps.contacts, Image: deps.images},
		deps.verifier,
		cm.NewManager(),
		pingerFunc(func(context.Context) error { return pingErr }),
		func(w io.Writer) { fmt.Fprintln(w, "process_up 1") },
		testutil.MakeNoopLogger(),
	)
	return r.Register(), deps
}

func serve(h http.Handler, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/liveness", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/readiness", "", nil).Code)

	failing, _ := newTestHandler(t, errors.New("db down"))
	assert.Equal(t, http.StatusServiceUnavailable, serve(failing, http.MethodGet, "/readiness", "", nil).Code)
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	h, deps := newTestHandler(t, nil)
	deps.verifier.On("Verify", mock.Anything, "bad").Return("", errors.New("invalid"))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/create-card"},
		{http.MethodPost, "/api/save-contact-card"},
		{http.MethodGet, "/api/get-contact-cards"},
		{http.MethodGet, "/api/get-card/" + uuid.NewString()},
		{http.MethodGet, "/api/get-card/" + uuid.NewString() + "/vcard"},
		{http.MethodDelete, "/api/delete-card/" + uuid.NewString()},
		{http.MethodPost, "/api/add-contact"},
		{http.MethodGet, "/api/get-user-contacts"},
		{http.MethodPost, "/api/upload-image"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp := serve(h, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusForbidden, resp.Code)
			assert.JSONEq(t, `{"success":false,"message":"missing authorization token"}`, resp.Body.String())

			resp = serve(h, rt.method, rt.path, "bad", nil)
			assert.Equal(t, http.StatusForbidden, resp.Code)
		})
	}
}

func TestRouter_AuthenticatedRequest(t *testing.T) {
	h, deps := newTestHandler(t, nil)

	cardID := uuid.New()
	deps.verifier.On("Verify", mock.Anything, "good").Return("user-1", nil)
	deps.cards.On("CreateCard", mock.Anything, "user-1").Return(model.ContactCard{ID: cardID, OwnerID: "user-1"}, nil)

	resp := serve(h, http.MethodPost, "/api/create-card", "good", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"_id":%q}`, cardID), resp.Body.String())

	metricsResp := serve(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, metricsResp.Code)
	text := metricsResp.Body.String()
	assert.Contains(t, text, `http_requests_total{method="POST",path="/api/create-card",status="200"} 1`)
	assert.Contains(t, text, "process_up 1")
}

func TestRouter_ValidationErrorShape(t *testing.T) {
	h, deps := newTestHandler(t, nil)
	deps.verifier.On("Verify", mock.Anything, "good").Return("user-1", nil)

	resp := serve(h, http.MethodPost, "/api/add-contact", "good", strings.NewReader(`{}`))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
	assert.NotContains(t, resp.Body.String(), "$schema")
}

func TestRouter_UploadBodyLimit(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("cardId", uuid.NewString()))
	part, err := w.CreateFormFile("image", "big.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, int(model.MaxImageSize)+2<<20))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	payload := buf.Bytes()

	tests := []struct {
		name string
		body func() io.Reader
	}{
		{name: "declared length", body: func() io.Reader { return bytes.NewReader(payload) }},
		{name: "unknown length", body: func() io.Reader { return io.MultiReader(bytes.NewReader(payload)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t, nil)
			deps.verifier.On("Verify", mock.Anything, "good").Return("user-1", nil).Maybe()

			req := httptest.NewRequest(http.MethodPost, "/api/upload-image", tt.body())
			req.Header.Set("Authorization", "Bearer good")
			req.Header.Set("Content-Type", w.FormDataContentType())
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, req)

			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), `"success":false`)
			deps.images.AssertNotCalled(t, "ReplaceImage", mock.Anything, mock.Anything)
		})
	}
}

func TestRouter_OpenAPI(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	resp := serve(h, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/api/upload-image")
	assert.Contains(t, resp.Body.String(), "/api/get-card/{cardId}/vcard")
}
