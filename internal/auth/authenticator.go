package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"floral-studio/internal/config"
	"floral-studio/internal/domain"
)

// ErrInvalidCredentials is returned when a credential check fails
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the identity a login asks for plus the secret proving it
type Credentials struct {
	Username string
	Email    string
	Role     domain.UserRole
	Secret   string
}

// Authenticator checks login credentials
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) error
}

// PresenceAuthenticator accepts any non-empty secret
type PresenceAuthenticator struct{}

func (PresenceAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	if creds.Secret == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// BcryptAuthenticator checks the secret against a username to bcrypt hash table
type BcryptAuthenticator struct {
	hashes map[string]string
}

func NewBcryptAuthenticator(hashes map[string]string) *BcryptAuthenticator {
	return &BcryptAuthenticator{hashes: hashes}
}

func (a *BcryptAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	hash, ok := a.hashes[creds.Username]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Secret)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// JWTAuthenticator treats the secret as an HS256 token.
// The sub, email and role claims must match the requested identity.
type JWTAuthenticator struct {
	secretKey []byte
}

func NewJWTAuthenticator(secretKey string) *JWTAuthenticator {
	return &JWTAuthenticator{secretKey: []byte(secretKey)}
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	token, err := jwt.Parse(creds.Secret, func(token *jwt.Token) (interface{}, error) {
		return a.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub != creds.Username || email != creds.Email || domain.UserRole(role) != creds.Role {
		return ErrInvalidCredentials
	}
	return nil
}

// New builds the authenticator selected by configuration
func New(cfg config.AuthConfig) (Authenticator, error) {
	switch cfg.Mode {
	case config.AuthModePresence, "":
		return PresenceAuthenticator{}, nil
	case config.AuthModeBcrypt:
		return NewBcryptAuthenticator(cfg.Credentials), nil
	case config.AuthModeJWT:
		return NewJWTAuthenticator(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", cfg.Mode)
	}
}
