package jwt

import (
	"errors"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// AdminSubject is the subject of every token that may call admin routes.
const AdminSubject = "agelock-admin"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("expired token")
	ErrMissingSecret = errors.New("admin secret key is not configured")
)

type (
	Manager interface {
		CreateToken() (string, error)
		ValidateToken(tokenString string) error
		DecodeToken(tokenString string) (*Claims, error)
	}
	manager struct {
		config *config.ServerConfig
	}
)

func NewJwtManager(config *config.ServerConfig) Manager {
	return &manager{
		config: config,
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

// CreateToken signs an admin token. A zero AdminTokenTTL issues a token
// without expiry.
func (m *manager) CreateToken() (string, error) {
	if m.config.SecretKey == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  AdminSubject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.config.AdminTokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.config.AdminTokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateToken rejects every token while no secret is configured.
func (m *manager) ValidateToken(tokenString string) error {
	claims, err := m.DecodeToken(tokenString)
	if err != nil {
		return err
	}
	if claims.Subject != AdminSubject {
		return ErrInvalidToken
	}
	return nil
}

func (m *manager) DecodeToken(tokenString string) (*Claims, error) {
	if m.config.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
