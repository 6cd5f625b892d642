package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_ExposesIdentityToHandlers(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateToken(userID, "alice")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var gotClaims *auth.Claims
	var gotActor string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims
		gotActor = actor(r)
	})

	req := httptest.NewRequest(http.MethodPost, "/news", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Authenticator(jwtManager, logger)(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, userID, gotClaims.UserID)
	assert.Equal(t, "alice", gotClaims.Username)
	assert.Equal(t, "alice", gotActor)
}

func TestIdentityFromContext_AbsentIdentity(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	// вне защищенных маршрутов имя действующего пользователя пустое
	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	assert.Empty(t, actor(req))
}
