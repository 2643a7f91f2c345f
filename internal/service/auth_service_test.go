package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/brightminds-api/internal/models"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

const testSecret = "test-secret"

func newAuthService(store *memStore, cfg AuthConfig) *AuthService {
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	return NewAuthService(memUsers{store}, nil, zap.NewNop(), cfg)
}

func seedUser(t *testing.T, store *memStore, id, email, password string, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: id, Name: strings.ToUpper(id[:1]) + id[1:], Email: email, PasswordHash: string(hash), Role: role}
	store.users[id] = user
	return user
}

func TestAuthServiceRegisterIssuesToken(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store, AuthConfig{})

	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice",
		Email:    "  Alice@BrightMinds.edu ",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.User.Role)

	stored := store.users[claims.User.ID]
	assert.Equal(t, "alice@brightminds.edu", stored.Email)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	store := newMemStore()
	seedUser(t, store, "alice", "alice@brightminds.edu", "secret123", models.RoleTeacher)
	svc := newAuthService(store, AuthConfig{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "ALICE@brightminds.edu", Password: "secret123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrDuplicateEmail)
	assert.Len(t, store.users, 1)
}

func TestAuthServiceRegisterRoleRules(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store, AuthConfig{RegistrableRoles: []models.UserRole{models.RoleStudent, models.RoleTeacher}})

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "T", Email: "t@x.edu", Password: "secret123", Role: models.RoleTeacher})
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "a@x.edu", Password: "secret123", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "P", Email: "p@x.edu", Password: "secret123", Role: "principal"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "S", Email: "not-an-email", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceLogin(t *testing.T) {
	store := newMemStore()
	seedUser(t, store, "alice", "alice@brightminds.edu", "secret123", models.RoleTeacher)
	svc := newAuthService(store, AuthConfig{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@brightminds.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.ID)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "alice", Role: models.RoleTeacher}, claims.User)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthServiceLoginUniformFailure(t *testing.T) {
	store := newMemStore()
	seedUser(t, store, "alice", "alice@brightminds.edu", "secret123", models.RoleTeacher)
	svc := newAuthService(store, AuthConfig{})

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "alice@brightminds.edu", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "bob@brightminds.edu", Password: "secret123"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginStoreFailure(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection reset")
	svc := newAuthService(store, AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@x.edu", Password: "x"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := newAuthService(newMemStore(), AuthConfig{})
	now := time.Now()

	sign := func(method jwt.SigningMethod, key interface{}, claims *models.JWTClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	claims := func(exp time.Time) *models.JWTClaims {
		return &models.JWTClaims{
			User:             models.Identity{ID: "u1", Role: models.RoleAdmin},
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		}
	}

	valid := sign(jwt.SigningMethodHS256, []byte(testSecret), claims(now.Add(time.Hour)))
	_, err := svc.ValidateToken(valid)
	require.NoError(t, err)

	elevated := claims(now.Add(time.Hour))
	elevated.User.Role = models.RoleSuperAdmin
	forgedPayload := strings.Split(sign(jwt.SigningMethodHS256, []byte("attacker"), elevated), ".")[1]
	parts := strings.Split(valid, ".")
	tampered := strings.Join([]string{parts[0], forgedPayload, parts[2]}, ".")

	cases := map[string]string{
		"expired":      sign(jwt.SigningMethodHS256, []byte(testSecret), claims(now.Add(-time.Minute))),
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), claims(now.Add(time.Hour))),
		"other alg":    sign(jwt.SigningMethodHS512, []byte(testSecret), claims(now.Add(time.Hour))),
		"tampered":     tampered,
		"malformed":    "not.a.jwt",
		"no expiry":    sign(jwt.SigningMethodHS256, []byte(testSecret), &models.JWTClaims{User: models.Identity{ID: "u1", Role: models.RoleAdmin}}),
		"unknown role": sign(jwt.SigningMethodHS256, []byte(testSecret), &models.JWTClaims{User: models.Identity{ID: "u1", Role: "root"}, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}),
		"alg none":     sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims(now.Add(time.Hour))),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
		})
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	store := newMemStore()
	user := seedUser(t, store, "bob", "bob@brightminds.edu", "password123", models.RoleStudent)
	user.MustChangePassword = true
	store.users[user.ID] = user
	svc := newAuthService(store, AuthConfig{})
	identity := models.Identity{ID: user.ID, Role: user.Role}

	err := svc.ChangePassword(context.Background(), identity, models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "n3wpassword"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), identity, models.ChangePasswordRequest{OldPassword: "password123", NewPassword: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.ChangePassword(context.Background(), identity, models.ChangePasswordRequest{OldPassword: "password123", NewPassword: "n3wpassword"}))
	assert.False(t, store.users[user.ID].MustChangePassword)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "n3wpassword"})
	assert.NoError(t, err)
}

func TestNewAuthServiceWarnsOnOpenRegistration(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	NewAuthService(memUsers{newMemStore()}, nil, zap.New(core), AuthConfig{Secret: testSecret})
	require.Equal(t, 1, logs.FilterMessageSnippet("AUTH_REGISTRABLE_ROLES").Len())

	core, logs = observer.New(zap.WarnLevel)
	NewAuthService(memUsers{newMemStore()}, nil, zap.New(core), AuthConfig{
		Secret:           testSecret,
		RegistrableRoles: []models.UserRole{models.RoleStudent, models.RoleTeacher},
	})
	assert.Zero(t, logs.Len())
}
