package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusgate/internal/model"
)

// fakeLocator records signed-URL requests and returns a canned response.
type fakeLocator struct {
	requests []model.SignedURLRequest
	url      string
	err      error
}

func (f *fakeLocator) SignedURL(_ context.Context, req model.SignedURLRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

const testAPIKey = "test-key"

func newTestServer(t *testing.T, locator *fakeLocator) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := NewServer(&ServerOptions{
		Port:         0,
		APIKeys:      []string{testAPIKey},
		Locator:      locator,
		SignedURLTTL: 5 * time.Minute,
	})
	require.NoError(t, err)
	require.NoError(t, s.RegisterRoutes())
	return s
}

func doDownload(s *Server, target string, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rr := httptest.NewRecorder()
	s.Engine.ServeHTTP(rr, req)
	return rr
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) apiError {
	t.Helper()
	var body apiError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestDownloadMissingContainer(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed"}
	s := newTestServer(t, locator)

	rr := doDownload(s, "/api/v1/download?filename=crash-01.bin", testAPIKey)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeAPIError(t, rr)
	assert.Equal(t, CodeInvalidRequest, body.Code)
	assert.Equal(t, "'container' query parameter must be provided and valid", body.Message)
	assert.Equal(t, "download", body.Operation)
	assert.Empty(t, locator.requests)
}

func TestDownloadInvalidContainer(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed"}
	s := newTestServer(t, locator)

	for _, container := range []string{"My-Corpus", "my--corpus", "-corpus", "ab"} {
		rr := doDownload(s, "/api/v1/download?container="+container+"&filename=f", testAPIKey)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "container %q", container)
		body := decodeAPIError(t, rr)
		assert.Equal(t, CodeInvalidRequest, body.Code)
		assert.Equal(t, "'container' query parameter must be provided and valid", body.Message)
	}
	assert.Empty(t, locator.requests)
}

func TestDownloadMissingFilename(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed"}
	s := newTestServer(t, locator)

	rr := doDownload(s, "/api/v1/download?container=my-corpus", testAPIKey)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeAPIError(t, rr)
	assert.Equal(t, CodeInvalidRequest, body.Code)
	assert.Equal(t, "'filename' query parameter must be provided", body.Message)
	assert.Equal(t, "download", body.Operation)
	assert.Empty(t, locator.requests)
}

func TestDownloadRedirectsToSignedURL(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed?sig=abc"}
	s := newTestServer(t, locator)

	rr := doDownload(s, "/api/v1/download?container=my-corpus&filename=crash-01.bin", testAPIKey)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://store.example.com/signed?sig=abc", rr.Header().Get("Location"))

	// Exactly one signed-URL request, read-only, 5 minutes, corpus class.
	require.Len(t, locator.requests, 1)
	req := locator.requests[0]
	assert.Equal(t, model.StorageClassCorpus, req.Class)
	assert.Equal(t, model.ContainerName("my-corpus"), req.Container)
	assert.Equal(t, "crash-01.bin", req.Filename)
	assert.Equal(t, model.PermissionRead, req.Permission)
	assert.Equal(t, 5*time.Minute, req.TTL)
}

func TestDownloadIsRepeatable(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed"}
	s := newTestServer(t, locator)

	first := doDownload(s, "/api/v1/download?container=my-corpus&filename=crash-01.bin", testAPIKey)
	second := doDownload(s, "/api/v1/download?container=my-corpus&filename=crash-01.bin", testAPIKey)

	assert.Equal(t, http.StatusFound, first.Code)
	assert.Equal(t, http.StatusFound, second.Code)
	// Each request mints its own URL; nothing is cached across requests.
	assert.Len(t, locator.requests, 2)
}

func TestDownloadUnauthorized(t *testing.T) {
	locator := &fakeLocator{url: "https://store.example.com/signed"}
	s := newTestServer(t, locator)

	missing := doDownload(s, "/api/v1/download?container=my-corpus&filename=f", "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	invalid := doDownload(s, "/api/v1/download?container=my-corpus&filename=f", "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)

	// Authorization strictly precedes validation and URL issuance.
	assert.Empty(t, locator.requests)
}

func TestDownloadLocatorFailure(t *testing.T) {
	locator := &fakeLocator{err: errors.New("store unreachable")}
	s := newTestServer(t, locator)

	rr := doDownload(s, "/api/v1/download?container=my-corpus&filename=f", testAPIKey)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Len(t, locator.requests, 1)
}
