package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifa-digital/rifa-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

// runExtraction sends a request through the principal-extraction
// middleware and captures the context the downstream handler sees.
func runExtraction(t *testing.T, authorization string) context.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured context.Context

	router := gin.New()
	router.Use(NewAuthenticator(testSigningKey).ExtractPrincipal())
	router.GET("/", func(c *gin.Context) {
		captured = c.Request.Context()
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, captured)

	return captured
}

func TestUserID_ValidToken(t *testing.T) {
	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, time.Hour)
	require.NoError(t, err)

	ctx := runExtraction(t, "Bearer "+token)

	userID, err := UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestUserID_NoCredential(t *testing.T) {
	ctx := runExtraction(t, "")

	_, err := UserID(ctx)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestUserID_InvalidToken(t *testing.T) {
	ctx := runExtraction(t, "Bearer garbage")

	_, err := UserID(ctx)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestOptionalUserID_NoCredential(t *testing.T) {
	ctx := runExtraction(t, "")

	userID, err := OptionalUserID(ctx)
	require.NoError(t, err)
	assert.Zero(t, userID)
}

// A bad credential errors even when auth is optional.
func TestOptionalUserID_InvalidToken(t *testing.T) {
	ctx := runExtraction(t, "Bearer garbage")

	_, err := OptionalUserID(ctx)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserIDFromToken(t *testing.T) {
	authenticator := NewAuthenticator(testSigningKey)

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 99, time.Hour)
	require.NoError(t, err)

	userID, err := authenticator.UserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(99), userID)

	_, err = authenticator.UserIDFromToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
