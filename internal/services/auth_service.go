package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt does not match the
// configured admin identity. The message is the same for a wrong username and
// a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredentials is the static identity allowed to log in. It comes from
// configuration; there is no user collection.
type AdminCredentials struct {
	Username string
	// Password is compared verbatim. PasswordHash, when set, takes precedence
	// and is compared with bcrypt so the plaintext never has to live in the
	// environment.
	Password     string
	PasswordHash string
}

// AuthService handles login and token issuance/validation.
type AuthService struct {
	admin      AdminCredentials
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(admin AdminCredentials, jwtSecret string) *AuthService {
	return &AuthService{
		admin:      admin,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Login checks the supplied credentials against the configured admin identity
// and returns a signed token on success.
func (s *AuthService) Login(username, password string) (string, error) {
	if s.admin.Password == "" && s.admin.PasswordHash == "" {
		// Misconfigured service; never accept a login in that state.
		return "", ErrInvalidCredentials
	}
	if username != s.admin.Username {
		return "", ErrInvalidCredentials
	}
	if s.admin.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
			return "", ErrInvalidCredentials
		}
	} else if password != s.admin.Password {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
