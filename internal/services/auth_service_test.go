package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
)

func TestAuthService_LoginAndParse(t *testing.T) {
	now := seedNow
	svc := AuthService{Users: seededMemory(t), Secret: []byte("secret"), TTL: time.Hour, Now: func() time.Time { return now }}

	token, user, err := svc.Login(context.Background(), "ADMIN", "admin")
	require.NoError(t, err)
	assert.Equal(t, "user-admin", user.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-admin", claims.UserID)

	// the email works as a login name too
	_, _, err = svc.Login(context.Background(), "admin@shiptix.local", "admin")
	assert.NoError(t, err)
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := AuthService{Users: seededMemory(t), Secret: []byte("secret")}
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "admin", "wrong")
	assert.True(t, domain.IsUnauthorized(err))

	_, _, err = svc.Login(ctx, "ghost", "admin")
	assert.True(t, domain.IsUnauthorized(err))

	_, _, err = svc.Login(ctx, "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	now := seedNow
	svc := AuthService{Users: seededMemory(t), Secret: []byte("secret"), TTL: time.Minute, Now: func() time.Time { return now }}
	token, _, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	other := svc
	other.Secret = []byte("other")
	_, err = other.ParseToken(token)
	assert.True(t, domain.IsUnauthorized(err))

	later := svc
	later.Now = func() time.Time { return now.Add(time.Hour) }
	_, err = later.ParseToken(token)
	require.True(t, domain.IsUnauthorized(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ParseToken(raw)
	assert.True(t, domain.IsUnauthorized(err))
}
