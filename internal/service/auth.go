package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/datle/datle-api/internal/domain"
	"github.com/datle/datle-api/internal/logger"
)

// otpMax bounds the generated one-time code to six decimal digits.
const otpMax = 1000000

// tokenLifetime is how long an issued access token stays valid.
const tokenLifetime = 24 * time.Hour

// TokenClaims are the claims carried by issued access tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// otpRecord is one pending code with its expiry instant.
type otpRecord struct {
	code      string
	expiresAt time.Time
}

// AuthService issues one-time codes by email and exchanges them for signed
// bearer tokens. Codes live in memory only; a restart invalidates them,
// which is acceptable because they are short-lived anyway.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	logger logger.Logger

	mu    sync.Mutex
	codes map[string]otpRecord

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(jwtSecret string, otpTTL time.Duration, log logger.Logger) *AuthService {
	return &AuthService{
		secret: []byte(jwtSecret),
		ttl:    otpTTL,
		logger: log,
		codes:  make(map[string]otpRecord),
		now:    time.Now,
	}
}

// generateOTP returns a random six digit code, zero padded.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestOTP generates and stores a code for the email, replacing any
// pending one, and returns the code's lifetime. Delivery is a log line
// until an email provider is integrated.
func (s *AuthService) RequestOTP(email string) (time.Duration, error) {
	code, err := generateOTP()
	if err != nil {
		return 0, err
	}

	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	s.codes[key] = otpRecord{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	s.logger.Info("otp generated",
		logger.String("email", key),
		logger.String("otp", code),
	)

	return s.ttl, nil
}

// VerifyOTP checks the code for the email and, when valid, consumes it and
// returns a signed bearer token. Codes are single use; expired or unknown
// codes return the corresponding domain error.
func (s *AuthService) VerifyOTP(email, code string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	record, ok := s.codes[key]
	if ok && s.now().After(record.expiresAt) {
		delete(s.codes, key)
		s.mu.Unlock()
		return "", domain.ErrOTPExpired
	}
	if ok && record.code == code {
		delete(s.codes, key)
	}
	s.mu.Unlock()

	if !ok {
		return "", domain.ErrOTPNotFound
	}

	if record.code != code {
		return "", domain.ErrOTPInvalid
	}

	return s.issueToken(key)
}

// issueToken signs an HS256 access token for the email.
func (s *AuthService) issueToken(email string) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
