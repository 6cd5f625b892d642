package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/GoArmGo/NewsApp/internal/auth"
	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthUseCase() (AuthUseCase, *fakeUserStorage, *auth.JWTManager) {
	userStorage := &fakeUserStorage{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	uc := NewAuthUseCase(userStorage, jwtManager, discardLogger())
	return uc, userStorage, jwtManager
}

func TestRegister_NeverStoresPlaintextPassword(t *testing.T) {
	uc, userStorage, _ := newTestAuthUseCase()

	user, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")

	require.NoError(t, err)
	assert.NotEqual(t, "pw123", user.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("pw123", user.PasswordHash))

	stored, err := userStorage.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "pw123")
}

func TestRegister_MissingFields(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()

	_, err := uc.Register(context.Background(), "alice", "", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"email", "password"}, validationErr.Fields)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "alice", "other@x.com", "pw456")

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "username", conflictErr.Field)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "bob", "a@x.com", "pw456")

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "email", conflictErr.Field)
}

func TestRegister_InsertRaceReportsConstraintField(t *testing.T) {
	// Конкурентная регистрация может пройти предварительные проверки и
	// проиграть гонку уже на вставке: конфликтующее поле берется из
	// имени нарушенного ограничения в ошибке хранилища
	cases := []struct {
		name       string
		storageErr error
		wantField  string
	}{
		{"username constraint", fmt.Errorf("%w: users_username_key", ports.ErrDuplicate), "username"},
		{"email constraint", fmt.Errorf("%w: users_email_key", ports.ErrDuplicate), "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, userStorage, _ := newTestAuthUseCase()
			userStorage.createErr = tc.storageErr

			_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")

			var conflictErr *ConflictError
			require.ErrorAs(t, err, &conflictErr)
			assert.Equal(t, tc.wantField, conflictErr.Field)
		})
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	uc, _, jwtManager := newTestAuthUseCase()

	user, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	token, err := uc.Login(context.Background(), "alice", "pw123")

	require.NoError(t, err)
	claims, err := jwtManager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, errUnknown := uc.Login(context.Background(), "nobody", "pw123")
	_, errWrongPw := uc.Login(context.Background(), "alice", "wrong")

	// неизвестное имя и неверный пароль неразличимы для клиента
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPw, errUnknown)
}
