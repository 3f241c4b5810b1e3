//nolint:testpackage // Exercising the OTP store and clock directly.
package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

const testSecret = "test-secret"

func newAuthService() *AuthService {
	return NewAuthService(testSecret, 10*time.Minute, logger.NewNop())
}

// issuedCode reads the pending code for an email straight out of the store.
func issuedCode(t *testing.T, svc *AuthService, email string) string {
	t.Helper()

	svc.mu.Lock()
	defer svc.mu.Unlock()

	record, ok := svc.codes[email]
	require.True(t, ok, "no code stored for %s", email)
	return record.code
}

func TestRequestOTP(t *testing.T) {
	svc := newAuthService()

	ttl, err := svc.RequestOTP("Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)

	// Codes are keyed by lowercased email and are six decimal digits.
	code := issuedCode(t, svc, "ana@example.com")
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
}

func TestVerifyOTP(t *testing.T) {
	t.Run("valid code yields a signed token", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.RequestOTP("ana@example.com")
		require.NoError(t, err)

		code := issuedCode(t, svc, "ana@example.com")

		tokenString, err := svc.VerifyOTP("ana@example.com", code)
		require.NoError(t, err)

		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "ana@example.com", claims.Subject)
	})

	t.Run("codes are single use", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.RequestOTP("ana@example.com")
		require.NoError(t, err)

		code := issuedCode(t, svc, "ana@example.com")

		_, err = svc.VerifyOTP("ana@example.com", code)
		require.NoError(t, err)

		_, err = svc.VerifyOTP("ana@example.com", code)
		assert.ErrorIs(t, err, domain.ErrOTPNotFound)
	})

	t.Run("wrong code is rejected but not consumed", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.RequestOTP("ana@example.com")
		require.NoError(t, err)

		_, err = svc.VerifyOTP("ana@example.com", "000000x")
		assert.ErrorIs(t, err, domain.ErrOTPInvalid)

		code := issuedCode(t, svc, "ana@example.com")
		_, err = svc.VerifyOTP("ana@example.com", code)
		assert.NoError(t, err)
	})

	t.Run("expired code is rejected and removed", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.RequestOTP("ana@example.com")
		require.NoError(t, err)

		code := issuedCode(t, svc, "ana@example.com")

		svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

		_, err = svc.VerifyOTP("ana@example.com", code)
		assert.ErrorIs(t, err, domain.ErrOTPExpired)

		_, err = svc.VerifyOTP("ana@example.com", code)
		assert.ErrorIs(t, err, domain.ErrOTPNotFound)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		svc := newAuthService()

		_, err := svc.VerifyOTP("nobody@example.com", "123456")
		assert.ErrorIs(t, err, domain.ErrOTPNotFound)
	})
}
