package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTManager_GenerateToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	userID := uuid.New()

	tokenString, err := manager.GenerateToken(userID, "alice")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := manager.VerifyToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_VerifyToken_InvalidToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)

	_, err := manager.VerifyToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTManager_VerifyToken_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Hour)

	tokenString, _ := manager.GenerateToken(uuid.New(), "alice")

	_, err := manager.VerifyToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_VerifyToken_WrongSecret(t *testing.T) {
	manager1 := NewJWTManager("secret1", time.Hour)
	manager2 := NewJWTManager("secret2", time.Hour)

	tokenString, _ := manager1.GenerateToken(uuid.New(), "alice")

	_, err := manager2.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestJWTManager_VerifyToken_InvalidSigningMethod(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)

	// Токен с асимметричным алгоритмом не должен приниматься HMAC-верификатором
	claims := &Claims{
		UserID:   uuid.New(),
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = manager.VerifyToken(tokenString)
	assert.Error(t, err)
}
