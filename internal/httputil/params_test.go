package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/paywall/internal/httputil"
)

func TestParseArticleID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		id          string
		expectedID  uint64
		expectError bool
	}{
		{name: "valid id", id: "15", expectedID: 15},
		{name: "zero", id: "0", expectError: true},
		{name: "negative", id: "-1", expectError: true},
		{name: "not a number", id: "abc", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			articleID, err := httputil.ParseArticleID(c)

			if tt.expectError {
				assert.EqualError(t, err, "invalid article id: must be a positive integer")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, articleID)
		})
	}
}

func TestRequireQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?reader=0xabc", nil)

	value, err := httputil.RequireQuery(c, "reader")
	assert.NoError(t, err)
	assert.Equal(t, "0xabc", value)

	_, err = httputil.RequireQuery(c, "seller")
	assert.EqualError(t, err, "missing seller query parameter")
}
