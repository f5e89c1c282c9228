package services

import (
	"time"

	"mindspace-notes/mindspace/utils/token"

	"golang.org/x/crypto/bcrypt"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	Enabled() bool
}

// AuthService protects the HTTP surface of a single-user installation. When
// no password hash is configured the surface is open and Login is rejected.
type AuthService struct {
	passwordHash  string
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(passwordHash, jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		passwordHash:  passwordHash,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return token.GenerateToken(s.jwtSecret, s.jwtExpiration)
}

func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

// HashPassword is a helper for generating the AUTH_PASSWORD_HASH setting.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
