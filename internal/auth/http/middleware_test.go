package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/paywall/internal/httputil"
)

// mockAPIKeyService is a mock implementation of APIKeyService for testing.
type mockAPIKeyService struct {
	mock.Mock
}

func (m *mockAPIKeyService) GenerateAPIKey() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAPIKeyService) HashAPIKey(plainKey string) (string, error) {
	args := m.Called(plainKey)
	return args.String(0), args.Error(1)
}

func (m *mockAPIKeyService) CompareAPIKey(plainKey string, hashedKey string) bool {
	args := m.Called(plainKey, hashedKey)
	return args.Bool(0)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testKeyHash = "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"

func newAuthRouter(svc *mockAPIKeyService, keyHash string) *gin.Engine {
	router := gin.New()
	router.Use(PublisherAuthMiddleware(svc, keyHash, createTestLogger()))
	router.POST("/publish", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func serveWithAuth(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/publish", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestPublisherAuthMiddleware_Success(t *testing.T) {
	for _, prefix := range []string{"Bearer ", "bearer ", "BEARER "} {
		t.Run(prefix, func(t *testing.T) {
			svc := &mockAPIKeyService{}
			svc.On("CompareAPIKey", "publisher-key", testKeyHash).Return(true).Once()

			w := serveWithAuth(newAuthRouter(svc, testKeyHash), prefix+"publisher-key")

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestPublisherAuthMiddleware_Error_MissingAuthorizationHeader(t *testing.T) {
	svc := &mockAPIKeyService{}

	w := serveWithAuth(newAuthRouter(svc, testKeyHash), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "unauthorized", response.Error)
	svc.AssertNotCalled(t, "CompareAPIKey", mock.Anything, mock.Anything)
}

func TestPublisherAuthMiddleware_Error_MalformedAuthorizationHeader(t *testing.T) {
	for _, header := range []string{"Basic publisher-key", "Bearer", "Bearer "} {
		t.Run(header, func(t *testing.T) {
			svc := &mockAPIKeyService{}

			w := serveWithAuth(newAuthRouter(svc, testKeyHash), header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			svc.AssertNotCalled(t, "CompareAPIKey", mock.Anything, mock.Anything)
		})
	}
}

func TestPublisherAuthMiddleware_Error_WrongKey(t *testing.T) {
	svc := &mockAPIKeyService{}
	svc.On("CompareAPIKey", "wrong-key", testKeyHash).Return(false).Once()

	w := serveWithAuth(newAuthRouter(svc, testKeyHash), "Bearer wrong-key")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertExpectations(t)
}

func TestPublisherAuthMiddleware_Error_HashNotConfigured(t *testing.T) {
	svc := &mockAPIKeyService{}

	w := serveWithAuth(newAuthRouter(svc, ""), "Bearer publisher-key")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "CompareAPIKey", mock.Anything, mock.Anything)
}
