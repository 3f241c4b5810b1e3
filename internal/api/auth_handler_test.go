package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/datle/datle-api/internal/api"
	"github.com/datle/datle-api/internal/domain"
)

type mockAuthenticator struct {
	requestFunc func(email string) (time.Duration, error)
	verifyFunc  func(email, code string) (string, error)
}

func (m *mockAuthenticator) RequestOTP(email string) (time.Duration, error) {
	if m.requestFunc != nil {
		return m.requestFunc(email)
	}
	return 10 * time.Minute, nil
}

func (m *mockAuthenticator) VerifyOTP(email, code string) (string, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(email, code)
	}
	return "signed-token", nil
}

func setupAuthRouter(t *testing.T, svc *mockAuthenticator) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	handler := api.NewAuthHandler(svc)

	router := gin.New()
	router.POST("/api/auth/request-otp", handler.RequestOTP)
	router.POST("/api/auth/verify-otp", handler.VerifyOTP)

	return router
}

func TestAuthHandler_RequestOTP(t *testing.T) {
	t.Run("valid email returns expiry", func(t *testing.T) {
		router := setupAuthRouter(t, &mockAuthenticator{})

		w := postJSON(router, "/api/auth/request-otp", map[string]any{"email": "ana@example.com"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"expires_in_minutes":10`)
	})

	t.Run("invalid email returns 422", func(t *testing.T) {
		router := setupAuthRouter(t, &mockAuthenticator{})

		w := postJSON(router, "/api/auth/request-otp", map[string]any{"email": "not-an-email"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	body := map[string]any{"email": "ana@example.com", "otp": "123456"}

	t.Run("valid code returns bearer token", func(t *testing.T) {
		router := setupAuthRouter(t, &mockAuthenticator{})

		w := postJSON(router, "/api/auth/verify-otp", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"signed-token"`)
		assert.Contains(t, w.Body.String(), `"token_type":"Bearer"`)
	})

	t.Run("invalid code returns 401", func(t *testing.T) {
		router := setupAuthRouter(t, &mockAuthenticator{
			verifyFunc: func(string, string) (string, error) {
				return "", domain.ErrOTPInvalid
			},
		})

		w := postJSON(router, "/api/auth/verify-otp", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired code returns 401", func(t *testing.T) {
		router := setupAuthRouter(t, &mockAuthenticator{
			verifyFunc: func(string, string) (string, error) {
				return "", domain.ErrOTPExpired
			},
		})

		w := postJSON(router, "/api/auth/verify-otp", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
