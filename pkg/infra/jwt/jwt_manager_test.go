package jwt_test

import (
	"testing"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/NeuralTrust/AgeLock/pkg/infra/jwt"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(secret string, ttl time.Duration) jwt.Manager {
	return jwt.NewJwtManager(&config.ServerConfig{SecretKey: secret, AdminTokenTTL: ttl})
}

func sign(t *testing.T, secret string, claims jwtlib.Claims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestCreateToken_AndValidate(t *testing.T) {
	mgr := newManager("test-secret", time.Hour)

	token, err := mgr.CreateToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, mgr.ValidateToken(token))

	claims, err := mgr.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, jwt.AdminSubject, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCreateToken_NoExpiryWithoutTTL(t *testing.T) {
	mgr := newManager("test-secret", 0)

	token, err := mgr.CreateToken()
	require.NoError(t, err)
	claims, err := mgr.DecodeToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestValidateToken(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{
			name:  "other secret",
			token: sign(t, "other-secret", &jwt.Claims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: jwt.AdminSubject, IssuedAt: jwtlib.NewNumericDate(now)}}),
			want:  jwt.ErrInvalidToken,
		},
		{
			name: "expired",
			token: sign(t, "test-secret", &jwt.Claims{RegisteredClaims: jwtlib.RegisteredClaims{
				Subject:   jwt.AdminSubject,
				IssuedAt:  jwtlib.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour)),
			}}),
			want: jwt.ErrExpiredToken,
		},
		{
			name:  "wrong subject",
			token: sign(t, "test-secret", &jwt.Claims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: "someone", IssuedAt: jwtlib.NewNumericDate(now)}}),
			want:  jwt.ErrInvalidToken,
		},
		{
			name:  "garbage",
			token: "not-a-token",
			want:  jwt.ErrInvalidToken,
		},
	}

	mgr := newManager("test-secret", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mgr.ValidateToken(tt.token), tt.want)
		})
	}
}

func TestMissingSecret(t *testing.T) {
	mgr := newManager("", time.Hour)

	_, err := mgr.CreateToken()
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)

	token := sign(t, "test-secret", &jwt.Claims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: jwt.AdminSubject}})
	assert.ErrorIs(t, mgr.ValidateToken(token), jwt.ErrMissingSecret)
}
