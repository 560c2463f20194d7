package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signed(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, 42, time.Hour)
	require.NoError(t, err)

	userID, err := ParseToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = ParseToken("another-secret", tok)
	assert.Error(t, err)

	_, err = IssueToken("", 1, time.Hour)
	assert.Error(t, err)
}

func TestIssueToken_UniqueIDs(t *testing.T) {
	a, err := IssueToken(testSecret, 1, time.Hour)
	require.NoError(t, err)
	b, err := IssueToken(testSecret, 1, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": CurrentUserID(c)})
	})

	valid := func(userID uint) jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}
	with := func(claims jwt.MapClaims, key string, value any) jwt.MapClaims {
		claims[key] = value
		return claims
	}
	without := func(claims jwt.MapClaims, key string) jwt.MapClaims {
		delete(claims, key)
		return claims
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{"Happy Path", "Bearer " + signed(t, valid(123), jwt.SigningMethodHS256), http.StatusOK, 123},
		{"Missing Header", "", http.StatusUnauthorized, 0},
		{"Invalid Format", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, 0},
		{"Malformed Token", "Bearer malformed.token.here", http.StatusUnauthorized, 0},
		{"Expired Token", "Bearer " + signed(t, with(valid(1), "exp", time.Now().Add(-time.Hour).Unix()), jwt.SigningMethodHS256), http.StatusUnauthorized, 0},
		{"Wrong Issuer", "Bearer " + signed(t, with(valid(1), "iss", "someone-else"), jwt.SigningMethodHS256), http.StatusUnauthorized, 0},
		{"Wrong Audience", "Bearer " + signed(t, with(valid(1), "aud", "public"), jwt.SigningMethodHS256), http.StatusUnauthorized, 0},
		{"Missing Subject", "Bearer " + signed(t, without(valid(1), "sub"), jwt.SigningMethodHS256), http.StatusUnauthorized, 0},
		{"Non Numeric Subject", "Bearer " + signed(t, with(valid(1), "sub", "abc"), jwt.SigningMethodHS256), http.StatusUnauthorized, 0},
		{"Other HMAC Method", "Bearer " + signed(t, valid(1), jwt.SigningMethodHS512), http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]uint
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedUserID, body["userID"])
			}
		})
	}
}
