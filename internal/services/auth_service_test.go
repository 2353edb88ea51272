package services_test

import (
	"fmt"
	"testing"
	"time"

	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newTestAuthService() *services.AuthService {
	return services.NewAuthService(services.AdminCredentials{
		Username: "admin",
		Password: "sup3rsecret",
	}, testJWTSecret)
}

func TestAuthService_Login(t *testing.T) {
	authService := newTestAuthService()

	// Test successful login
	token, err := authService.Login("admin", "sup3rsecret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "admin", claims["username"])

	// Expiry should be 24 hours out
	exp, ok := claims["exp"].(float64)
	assert.True(t, ok)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), int64(exp), 5)

	// Test wrong password
	_, err = authService.Login("admin", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test wrong username
	_, err = authService.Login("root", "sup3rsecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test both wrong
	_, err = authService.Login("root", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginWithPasswordHash(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	authService := services.NewAuthService(services.AdminCredentials{
		Username:     "admin",
		PasswordHash: string(hashed),
	}, testJWTSecret)

	token, err := authService.Login("admin", "sup3rsecret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = authService.Login("admin", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// The stored hash itself must not work as a password
	_, err = authService.Login("admin", string(hashed))
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginWithoutConfiguredPassword(t *testing.T) {
	// A service configured with neither password form rejects everything,
	// including an empty password.
	authService := services.NewAuthService(services.AdminCredentials{
		Username: "admin",
	}, testJWTSecret)

	_, err := authService.Login("admin", "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newTestAuthService()

	// A freshly issued token validates
	tokenString, err := authService.Login("admin", "sup3rsecret")
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])

	// Test garbled token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"exp":      time.Now().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token signed with a different secret
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
